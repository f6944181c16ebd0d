package gemini

import (
	"testing"

	"github.com/stretchr/testify/require"

	"niftyscreener/internal/market"
)

func ptr[T any](v T) *T { return &v }

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	prompt := BuildPrompt(ProfileFacts{
		Symbol:      "TCS",
		CompanyName: "Tata Consultancy Services Limited",
		Sector:      "Technology",
		Industry:    "Information Technology Services",
		Description: "Provides IT services.",
	})

	require.Contains(t, prompt, "Do not give financial advice.")
	require.Contains(t, prompt, "Company Name: Tata Consultancy Services Limited, Ticker Symbol: TCS, Sector: Technology, Industry: Information Technology Services, Company Description: Provides IT services.")
	require.Contains(t, prompt, "**1. Core Business and Market Position:**")
	require.Contains(t, prompt, "**2. Key Potential Strengths:**")
	require.Contains(t, prompt, "**3. Notable Risks or Challenges:**")
	require.Contains(t, prompt, "retail investor")
}

func TestFactsFromProfile_Fallbacks(t *testing.T) {
	t.Parallel()

	facts := FactsFromProfile("infy", market.RawProfile{Symbol: "INFY.NS"})
	require.Equal(t, ProfileFacts{Symbol: "infy", CompanyName: "infy", Sector: "N/A", Industry: "N/A"}, facts)

	prompt := BuildPrompt(facts)
	require.Contains(t, prompt, "Company Name: infy, Ticker Symbol: infy, Sector: N/A, Industry: N/A")
}

func TestFactsFromProfile_UsesProfileValues(t *testing.T) {
	t.Parallel()

	facts := FactsFromProfile("TCS", market.RawProfile{
		Symbol:      "TCS.NS",
		CompanyName: ptr("Tata Consultancy Services Limited"),
		Sector:      ptr("Technology"),
		Industry:    ptr(""),
		Description: ptr("IT services."),
	})

	require.Equal(t, "Tata Consultancy Services Limited", facts.CompanyName)
	require.Equal(t, "Technology", facts.Sector)
	require.Equal(t, "N/A", facts.Industry)
	require.Equal(t, "IT services.", facts.Description)
}
