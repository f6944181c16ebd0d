package gemini

import (
	"fmt"
	"strings"

	"niftyscreener/internal/market"
)

// ProfileFacts are the company attributes interpolated into the summary prompt.
type ProfileFacts struct {
	Symbol      string
	CompanyName string
	Sector      string
	Industry    string
	Description string
}

// FactsFromProfile fills the prompt fields from an upstream profile. symbol is
// the caller's ticker; it stands in for a missing company name.
func FactsFromProfile(symbol string, p market.RawProfile) ProfileFacts {
	f := ProfileFacts{
		Symbol:      symbol,
		CompanyName: symbol,
		Sector:      "N/A",
		Industry:    "N/A",
	}
	if p.CompanyName != nil && strings.TrimSpace(*p.CompanyName) != "" {
		f.CompanyName = *p.CompanyName
	}
	if p.Sector != nil && *p.Sector != "" {
		f.Sector = *p.Sector
	}
	if p.Industry != nil && *p.Industry != "" {
		f.Industry = *p.Industry
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	return f
}

const promptTemplate = `Analyze the following Indian stock for an investor. Do not give financial advice.
Company Name: %s, Ticker Symbol: %s, Sector: %s, Industry: %s, Company Description: %s
Based on the information above, please generate a concise, neutral summary in three distinct sections.
Use double asterisks for headings. The sections should be:
**1. Core Business and Market Position:**
**2. Key Potential Strengths:**
**3. Notable Risks or Challenges:**
The summary should be easy to understand for a retail investor.
`

// BuildPrompt renders the fixed summary instruction for f.
func BuildPrompt(f ProfileFacts) string {
	name := f.CompanyName
	if name == "" {
		name = f.Symbol
	}
	return fmt.Sprintf(promptTemplate, name, f.Symbol, orNA(f.Sector), orNA(f.Industry), f.Description)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
