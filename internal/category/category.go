package category

// Category classifies an expense's purpose. The set is fixed; every
// expense carries exactly one of these values.
type Category string

const (
	Savings       Category = "SAVINGS"
	Food          Category = "FOOD"
	Housing       Category = "HOUSING"
	Misc          Category = "MISC"
	Sports        Category = "SPORTS"
	Health        Category = "HEALTH"
	Subscriptions Category = "SUBSCRIPTIONS"
	Study         Category = "STUDY"
	Entertainment Category = "ENTERTAINMENT"
	Services      Category = "SERVICES"
	Transport     Category = "TRANSPORT"
)

// SavingsTemplate is the per-category advice used by the savings
// advisor: fixed action items and the fraction of category spend
// considered recoverable.
type SavingsTemplate struct {
	ActionItems []string
	Rate        float64
}

// Definition is the static configuration for one category. Both the
// prediction engine and the savings advisor read category facts from
// here and nowhere else.
type Definition struct {
	DisplayName string
	Icon        string
	// Important marks essential recurring categories (rent, groceries,
	// utilities). These keep generating predictions even when the user
	// has not logged them in the current month.
	Important bool
	Template  *SavingsTemplate
}

var definitions = map[Category]Definition{
	Savings: {
		DisplayName: "Savings",
		Icon:        "💰",
	},
	Food: {
		DisplayName: "Food",
		Icon:        "🍽️",
		Important:   true,
		Template: &SavingsTemplate{
			Rate: 0.20,
			ActionItems: []string{
				"Plan weekly menus to avoid impulse purchases",
				"Cook at home more instead of eating out",
				"Buy ingredients in bulk",
				"Take advantage of supermarket offers and discounts",
			},
		},
	},
	Housing: {
		DisplayName: "Housing",
		Icon:        "🏠",
		Important:   true,
	},
	Misc: {
		DisplayName: "Miscellaneous",
		Icon:        "🛒",
		Template: &SavingsTemplate{
			Rate: 0.20,
			ActionItems: []string{
				"Categorize these expenses better to spot patterns",
				"Set a monthly cap for miscellaneous spending",
				"Ask yourself whether each purchase is really necessary",
				"Wait 24 hours before unplanned purchases",
			},
		},
	},
	Sports: {
		DisplayName: "Sports",
		Icon:        "⚽",
	},
	Health: {
		DisplayName: "Health",
		Icon:        "🏥",
		Important:   true,
	},
	Subscriptions: {
		DisplayName: "Subscriptions",
		Icon:        "📺",
		Important:   true,
	},
	Study: {
		DisplayName: "Study",
		Icon:        "📚",
		Important:   true,
	},
	Entertainment: {
		DisplayName: "Entertainment",
		Icon:        "🎬",
		Template: &SavingsTemplate{
			Rate: 0.25,
			ActionItems: []string{
				"Look for free activities such as parks and public events",
				"Use discounts on specific days, like cheap movie nights",
				"Share subscription plans with family or friends",
				"Try at-home entertainment like board games",
			},
		},
	},
	Services: {
		DisplayName: "Services",
		Icon:        "🔧",
		Important:   true,
		Template: &SavingsTemplate{
			Rate: 0.10,
			ActionItems: []string{
				"Review and negotiate your utility rates",
				"Consider switching to cheaper providers",
				"Adopt energy-saving habits",
				"Bundle services with one provider for discounts",
			},
		},
	},
	Transport: {
		DisplayName: "Transport",
		Icon:        "🚗",
		Important:   true,
		Template: &SavingsTemplate{
			Rate: 0.15,
			ActionItems: []string{
				"Use public transport where possible",
				"Walk or cycle for short distances",
				"Share rides with colleagues or friends",
				"Keep your vehicle maintained for better efficiency",
			},
		},
	},
}

// DefaultIcon is used for anything without a category definition.
const DefaultIcon = "💡"

// All returns every category in a stable order.
func All() []Category {
	return []Category{
		Savings, Food, Housing, Misc, Sports, Health,
		Subscriptions, Study, Entertainment, Services, Transport,
	}
}

// IsValid reports whether c is one of the fixed categories.
func IsValid(c Category) bool {
	_, ok := definitions[c]
	return ok
}

// IsImportant reports whether c is in the essential subset.
func IsImportant(c Category) bool {
	return definitions[c].Important
}

// DisplayName returns the human-readable name for c, falling back to
// the raw value for unknown categories.
func DisplayName(c Category) string {
	if def, ok := definitions[c]; ok {
		return def.DisplayName
	}
	return string(c)
}

// Icon returns the display icon for c.
func Icon(c Category) string {
	if def, ok := definitions[c]; ok {
		return def.Icon
	}
	return DefaultIcon
}

// Template returns the savings template for c, if one exists.
// Categories without a template are skipped by the advisor.
func Template(c Category) (*SavingsTemplate, bool) {
	def, ok := definitions[c]
	if !ok || def.Template == nil {
		return nil, false
	}
	return def.Template, true
}
