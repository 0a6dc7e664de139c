package engine

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	wordPattern  = regexp.MustCompile(`\b[A-Za-z]+\b`)
	yearsPattern = regexp.MustCompile(`(\d+)\s*years?`)
)

var stopWords = map[string]struct{}{
	"give": {}, "me": {}, "analysis": {}, "of": {}, "compare": {}, "and": {}, "show": {},
	"price": {}, "growth": {}, "for": {}, "over": {}, "last": {}, "years": {}, "year": {},
	"demand": {}, "trends": {}, "the": {}, "a": {}, "an": {}, "in": {}, "on": {}, "at": {}, "to": {},
}

var (
	comparisonWords = []string{"compare", "vs", "versus", "between"}
	timeWords       = []string{"growth", "trend", "over", "last", "years"}
)

// ExtractAreas 从查询中取出候选区域名：去掉停用词和不超过两个字母的词，首字母大写
func ExtractAreas(query string) []string {
	var areas []string
	for _, w := range wordPattern.FindAllString(query, -1) {
		lw := strings.ToLower(w)
		if _, stop := stopWords[lw]; stop || len(w) <= 2 {
			continue
		}
		areas = append(areas, strings.ToUpper(lw[:1])+lw[1:])
	}
	return areas
}

// IsComparison 查询是否是多区域对比
func IsComparison(query string) bool {
	return containsAny(strings.ToLower(query), comparisonWords)
}

// IsTimeBased 查询是否关心时间趋势
func IsTimeBased(query string) bool {
	return containsAny(strings.ToLower(query), timeWords)
}

// YearsWindow 查询中 "N years" 的 N
func YearsWindow(query string) (int, bool) {
	m := yearsPattern.FindStringSubmatch(strings.ToLower(query))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
