package recommend

import "fmt"

const (
	eligibilitySystem = "You are an eligibility checker. Respond only with valid JSON."
	scoringSystem     = "You are a subsidy scorer. Return ONLY valid JSON, no markdown formatting."
)

func eligibilityPrompt(p FarmerProfile, s SubsidyRecord) string {
	return fmt.Sprintf(`Does this farmer meet the eligibility criteria for this subsidy?
Farmer Profile:
- Income: %s
- Land Size: %g acres
- Farmer Type: %s
- Crop: %s
- State: %s

Subsidy: %s
Eligibility Criteria: %s

Answer with JSON:
{"eligible": true/false, "reason": "brief explanation"}`,
		p.Income, p.LandSize, p.FarmerType, p.CropType, p.State,
		s.Title, string(s.EligibilityCriteria))
}

func scoringPrompt(p FarmerProfile, s SubsidyRecord) string {
	desc := s.Description
	if desc == "" {
		desc = "N/A"
	}
	return fmt.Sprintf(`Score this subsidy's relevance (0-100) for this farmer.
Farmer: %s with %g acres, growing %s, income ₹%s, from %s, %s
Subsidy: %s - %s (Amount: ₹%g)
Score based on: crop match (40pts), income/land fit (30pts), region relevance (20pts), timing (10pts)
Return ONLY this JSON format, no markdown, no explanation:
{"score": 85, "reasoning": "Brief reason for score", "key_benefits": ["benefit1", "benefit2"]}`,
		p.FarmerType, p.LandSize, p.CropType, p.Income, p.District, p.State,
		s.Title, desc, s.Amount)
}
