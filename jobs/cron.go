package jobs

import (
	"context"
	"sync/atomic"
	"time"

	"propshare/services/logger"

	"github.com/alitto/pond/v2"
	"github.com/robfig/cron/v3"
)

// BookingCompleter hoàn tất các booking đã qua ngày trả phòng
type BookingCompleter interface {
	CompleteFinished(ctx context.Context) (int, error)
}

// Roller sinh thêm các năm sở hữu còn thiếu cho từng lần mua
type Roller interface {
	PendingRollovers(ctx context.Context) ([]string, error)
	ExtendAcquisition(ctx context.Context, acquisitionID string) (int, error)
}

type Options struct {
	Completer        BookingCompleter
	Roller           Roller
	Logger           logger.Logger
	CompleteSchedule string
	RolloverSchedule string
	PoolSize         int
	// Timeout cho mỗi lần chạy job, mặc định 10 phút
	Timeout time.Duration
}

// RolloverResult tổng kết một lần chạy roll-over
type RolloverResult struct {
	Acquisitions int `json:"acquisitions"`
	Rows         int `json:"rows"`
	Failed       int `json:"failed"`
}

// InitCronJobs đăng ký job hoàn tất booking hằng đêm và roll-over hằng năm rồi start cron
func InitCronJobs(c *cron.Cron, opts Options) error {
	l := opts.Logger
	if l == nil {
		l = logger.NewNop()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}

	if opts.Completer != nil {
		_, err := c.AddFunc(opts.CompleteSchedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			CompleteBookings(ctx, opts.Completer, l)
		})
		if err != nil {
			return err
		}
	}

	if opts.Roller != nil {
		_, err := c.AddFunc(opts.RolloverSchedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			if _, err := RunRollover(ctx, opts.Roller, opts.PoolSize, l); err != nil {
				l.Error("Roll-over thất bại: %v", err)
			}
		})
		if err != nil {
			return err
		}
	}

	c.Start()
	l.Info("Cron jobs initialized successfully")
	return nil
}

func CompleteBookings(ctx context.Context, completer BookingCompleter, l logger.Logger) int {
	l.Info("Đang hoàn tất các booking đã trả phòng lúc: %v", time.Now())
	count, err := completer.CompleteFinished(ctx)
	if err != nil {
		l.Error("Lỗi khi hoàn tất booking: %v", err)
		return count
	}
	l.Info("Đã hoàn tất %d booking", count)
	return count
}

// RunRollover chạy ExtendAcquisition cho mọi lần mua còn thiếu năm bằng worker pool.
// Lỗi của một lần mua không dừng các lần mua khác.
func RunRollover(ctx context.Context, roller Roller, poolSize int, l logger.Logger) (RolloverResult, error) {
	if l == nil {
		l = logger.NewNop()
	}
	ids, err := roller.PendingRollovers(ctx)
	if err != nil {
		return RolloverResult{}, err
	}
	result := RolloverResult{Acquisitions: len(ids)}
	if len(ids) == 0 {
		return result, nil
	}
	if poolSize <= 0 {
		poolSize = 1
	}

	var rows, failed atomic.Int64
	pool := pond.NewPool(poolSize, pond.WithContext(ctx))
	for _, id := range ids {
		pool.Submit(func() {
			created, err := roller.ExtendAcquisition(ctx, id)
			if err != nil {
				failed.Add(1)
				l.Error("Roll-over lần mua %s lỗi: %v", id, err)
				return
			}
			rows.Add(int64(created))
		})
	}
	pool.StopAndWait()

	result.Rows = int(rows.Load())
	result.Failed = int(failed.Load())
	l.Info("Roll-over xong: %d lần mua, %d dòng mới, %d lỗi", result.Acquisitions, result.Rows, result.Failed)
	return result, nil
}
