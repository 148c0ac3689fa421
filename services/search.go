package services

import (
	"sort"
	"strings"

	"propshare/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Hàm chuẩn hóa chuỗi: bỏ dấu, chữ thường
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

// Tạo đối tượng closestmatch cho danh sách từ khóa
func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

// Tính độ tương đồng giữa hai chuỗi
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len([]rune(a)))
	if l := float64(len([]rune(b))); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/maxLen
}

type scoredProperty struct {
	property models.Property
	score    int
}

// RankProperties trả về các bất động sản khớp gần đúng với query, điểm cao trước
func RankProperties(query string, properties []models.Property) []models.Property {
	q := normalizeInput(query)
	if q == "" || len(properties) == 0 {
		return properties
	}

	names := make([]string, 0, len(properties))
	seen := map[string]bool{}
	for _, p := range properties {
		n := normalizeInput(p.Name)
		if n != "" && !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	cm := createMatcher(names)
	closest := cm.Closest(q)

	var scored []scoredProperty
	for _, p := range properties {
		if score := calculateScore(q, closest, p); score > 0 {
			scored = append(scored, scoredProperty{property: p, score: score})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	out := make([]models.Property, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.property)
	}
	return out
}

func calculateScore(query, closestName string, p models.Property) int {
	name := normalizeInput(p.Name)
	score := 0
	if strings.Contains(name, query) {
		score += 30
	}
	if closestName != "" && closestName == name && calculateSimilarity(query, name) > 0.4 {
		score += 20
	}
	if sim := calculateSimilarity(query, name); sim > 0.6 {
		score += int(sim * 20)
	}
	if address := normalizeInput(p.Address); address != "" && strings.Contains(address, query) {
		score += 10
	}
	score += calculateAmenityScore(query, p.Amenities)
	return score
}

func calculateAmenityScore(query string, amenities []models.Amenity) int {
	maxAmenityScore := 12
	amenityScore := 0
	for _, a := range amenities {
		name := normalizeInput(a.Name)
		if name == "" {
			continue
		}
		if calculateSimilarity(query, name) > 0.7 || strings.Contains(query, name) {
			amenityScore += 4
			if amenityScore >= maxAmenityScore {
				break
			}
		}
	}
	return amenityScore
}
