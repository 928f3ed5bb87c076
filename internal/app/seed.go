package app

type sampleRestaurant struct {
	Restaurant RestaurantInput
	Items      []ItemInput
}

func usd(f float64) *float64 { return &f }

// sampleCatalog is simulation data used by Seed.
var sampleCatalog = []sampleRestaurant{
	{
		Restaurant: RestaurantInput{Name: "Sichuan House", City: "New York", CuisineHint: "Sichuan / spicy"},
		Items: []ItemInput{
			{
				Name:        "Mapo Tofu",
				Description: "Soft tofu in spicy chili-bean sauce with minced meat and Sichuan pepper.",
				Price:       usd(14.5),
				IsSignature: true,
				RegionTags:  []string{"Sichuan"},
				FlavorTags:  []string{"spicy", "numbing", "savory"},
			},
			{
				Name:        "Dan Dan Noodles",
				Description: "Wheat noodles with sesame-chili sauce, minced pork, and pickled greens.",
				Price:       usd(12),
				IsSignature: true,
				RegionTags:  []string{"Sichuan"},
				FlavorTags:  []string{"spicy", "savory", "nutty"},
			},
			{
				Name:        "Kung Pao Chicken",
				Description: "Stir-fried chicken with peanuts, dried chili, and a tangy-sweet sauce.",
				Price:       usd(16),
				RegionTags:  []string{"Sichuan"},
				FlavorTags:  []string{"spicy", "sweet", "sour", "nutty"},
			},
		},
	},
	{
		Restaurant: RestaurantInput{Name: "Canton Garden", City: "San Francisco", CuisineHint: "Cantonese / dim sum"},
		Items: []ItemInput{
			{
				Name:        "Har Gow (Shrimp Dumplings)",
				Description: "Steamed shrimp dumplings with translucent wrapper.",
				Price:       usd(8.5),
				IsSignature: true,
				RegionTags:  []string{"Cantonese"},
				FlavorTags:  []string{"savory", "delicate"},
			},
			{
				Name:        "Siomai (Pork & Shrimp)",
				Description: "Open-faced steamed dumplings with pork and shrimp.",
				Price:       usd(8),
				RegionTags:  []string{"Cantonese"},
				FlavorTags:  []string{"savory"},
			},
			{
				Name:        "Roast Duck",
				Description: "Crisp-skinned duck served with a light savory sauce.",
				Price:       usd(24),
				IsSignature: true,
				RegionTags:  []string{"Cantonese"},
				FlavorTags:  []string{"savory", "roasted"},
			},
		},
	},
	{
		Restaurant: RestaurantInput{Name: "Trattoria Roma", City: "Chicago", CuisineHint: "Italian"},
		Items: []ItemInput{
			{
				Name:        "Spaghetti Carbonara",
				Description: "Spaghetti with egg, pecorino, guanciale, and black pepper.",
				Price:       usd(18),
				IsSignature: true,
				RegionTags:  []string{"Italian", "Roman"},
				FlavorTags:  []string{"savory", "creamy", "peppery"},
			},
			{
				Name:        "Margherita Pizza",
				Description: "Tomato, mozzarella, basil, olive oil.",
				Price:       usd(17),
				RegionTags:  []string{"Italian", "Neapolitan"},
				FlavorTags:  []string{"savory", "herby"},
			},
			{
				Name:        "Tiramisu",
				Description: "Coffee-soaked ladyfingers with mascarpone cream and cocoa.",
				Price:       usd(9),
				IsSignature: true,
				RegionTags:  []string{"Italian"},
				FlavorTags:  []string{"sweet", "coffee", "creamy"},
			},
		},
	},
	{
		Restaurant: RestaurantInput{Name: "Burger & Smoke", City: "Austin", CuisineHint: "American / BBQ"},
		Items: []ItemInput{
			{
				Name:        "Smoked Brisket Plate",
				Description: "Slow-smoked beef brisket with house BBQ sauce and sides.",
				Price:       usd(22),
				IsSignature: true,
				RegionTags:  []string{"American", "BBQ", "Texas"},
				FlavorTags:  []string{"smoky", "savory"},
			},
			{
				Name:        "Cheeseburger",
				Description: "Griddled beef patty, cheddar, lettuce, tomato, pickles.",
				Price:       usd(13),
				RegionTags:  []string{"American"},
				FlavorTags:  []string{"savory"},
			},
			{
				Name:        "Spicy Fried Chicken Sandwich",
				Description: "Crispy chicken, spicy mayo, slaw, pickles.",
				Price:       usd(14),
				RegionTags:  []string{"American", "Southern"},
				FlavorTags:  []string{"spicy", "savory"},
			},
		},
	},
}
