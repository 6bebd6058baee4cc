package advisor

// gettingStartedSuggestions is the fixed advice returned when the
// month has no expense data to analyze.
func gettingStartedSuggestions() []Suggestion {
	return []Suggestion{
		{
			ID:          "start-tracking",
			Type:        TypeGettingStarted,
			Category:    "Getting Started",
			Title:       "📊 Start Recording Your Expenses",
			Description: "To receive personalized suggestions, you need to record your daily expenses.",
			ActionItems: []string{
				"Record every expense, even the small ones",
				"Categorize each expense correctly",
				"Keep a consistent record for at least a week",
				"Review your spending patterns regularly",
			},
			PotentialSavings: 0,
			Priority:         PriorityHigh,
			Icon:             "📊",
		},
		{
			ID:          "set-budget",
			Type:        TypeGettingStarted,
			Category:    "Budget",
			Title:       "🎯 Set a Monthly Budget",
			Description: "A budget helps you control spending and reach your financial goals.",
			ActionItems: []string{
				"Work out your net monthly income",
				"List all your fixed expenses (rent, utilities, etc.)",
				"Assign amounts for variable spending",
				"Include a savings category (at least 10%)",
			},
			PotentialSavings: 0,
			Priority:         PriorityHigh,
			Icon:             "🎯",
		},
	}
}

// generalSavingsTips pads the suggestion list when fewer than three
// personalized suggestions were produced.
func generalSavingsTips(a Analysis) []Suggestion {
	return []Suggestion{
		{
			ID:          "price-comparison",
			Type:        TypeGeneral,
			Category:    "Smart Shopping",
			Title:       "🔍 Compare Prices Before Buying",
			Description: "Make a habit of comparing prices to get the best deals.",
			ActionItems: []string{
				"Use price comparison apps",
				"Check offers across different stores",
				"Weigh online against in-store purchases",
				"Use coupons and discount codes",
			},
			PotentialSavings: a.TotalSpent * 0.05,
			Priority:         PriorityLow,
			Icon:             "🔍",
		},
		{
			ID:          "bulk-buying",
			Type:        TypeGeneral,
			Category:    "Buying Strategies",
			Title:       "📦 Buy Non-Perishables in Bulk",
			Description: "Buying in quantity can lower the unit cost of products you use regularly.",
			ActionItems: []string{
				"Identify products you use frequently",
				"Compare the unit cost across package sizes",
				"Make sure you have storage space",
				"Split large purchases with family or friends",
			},
			PotentialSavings: a.TotalSpent * 0.03,
			Priority:         PriorityLow,
			Icon:             "📦",
		},
	}
}
