package service

import "strings"

var cvKeywords = []string{"python", "java", "sql", "machine learning", "react", "api"}

// CVAnalysis holds heuristic percentage-style scores for a résumé.
type CVAnalysis struct {
	WordCount   int
	ATS         int
	Keywords    int
	Formatting  int
	Clarity     int
	Suggestions []string
}

type CVAnalyzerService interface {
	Analyze(text string) CVAnalysis
}

type cvAnalyzerService struct{}

func NewCVAnalyzerService() CVAnalyzerService {
	return &cvAnalyzerService{}
}

// Analyze is deterministic and has no side effects.
func (s *cvAnalyzerService) Analyze(text string) CVAnalysis {
	wordCount := len(strings.Fields(text))
	lower := strings.ToLower(text)

	matched := 0
	for _, kw := range cvKeywords {
		if strings.Contains(lower, kw) {
			matched++
		}
	}

	a := CVAnalysis{
		WordCount:  wordCount,
		ATS:        min(90, wordCount/5),
		Keywords:   matched * 100 / len(cvKeywords),
		Formatting: 50,
		Clarity:    55,
	}
	if strings.Contains(text, "\n") {
		a.Formatting = 90
	}
	if wordCount > 300 {
		a.Clarity = 80
	}

	a.Suggestions = []string{}
	if a.Keywords < 70 {
		a.Suggestions = append(a.Suggestions, "Improve keyword alignment with job roles")
	}
	if a.Clarity < 70 {
		a.Suggestions = append(a.Suggestions, "Shorten long bullet points")
	}
	if a.ATS < 70 {
		a.Suggestions = append(a.Suggestions, "Add measurable achievements")
	}
	return a
}
