package repository

import "propertychat/internal/model"

func intPtr(v int) *int { return &v }

// SeedProperties returns the mock listings loaded into empty stores
func SeedProperties() []model.Property {
	return []model.Property{
		{
			Address:      "2847 Oak Street",
			City:         "Vancouver",
			Province:     "BC",
			PostalCode:   "V6H 4A1",
			Price:        1250000,
			Bedrooms:     4,
			Bathrooms:    3,
			SquareFeet:   2850,
			Neighborhood: "Kitsilano",
			Description:  "This stunning modern home in prestigious Kitsilano offers the perfect blend of luxury and comfort. Features include an open-concept layout, gourmet kitchen with premium appliances, hardwood floors throughout, and a private backyard oasis. Walking distance to beaches, parks, and trendy shops.",
			Features:     model.JSONArray{"2 Car Garage", "Fireplace", "Large Yard", "Home Gym", "Hardwood Floors", "Gourmet Kitchen"},
			Images: model.JSONArray{
				"https://images.unsplash.com/photo-1600596542815-ffad4c1539a9?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
				"https://images.unsplash.com/photo-1586023492125-27b2c045efd7?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
			},
			Latitude:     49.2644,
			Longitude:    -123.1619,
			Rating:       4.8,
			DaysOnMarket: 3,
			Status:       "new",
			YearBuilt:    intPtr(2018),
			PropertyType: "house",
		},
		{
			Address:      "1456 Fraser Street",
			City:         "Vancouver",
			Province:     "BC",
			PostalCode:   "V5L 2X9",
			Price:        895000,
			Bedrooms:     3,
			Bathrooms:    2,
			SquareFeet:   2200,
			Neighborhood: "Mount Pleasant",
			Description:  "Charming family home in vibrant Mount Pleasant. This well-maintained house features original character details, updated kitchen, and a lovely garden. Close to transit, restaurants, and community amenities.",
			Features:     model.JSONArray{"Garden", "Updated Kitchen", "Character Details", "Close to Transit"},
			Images: model.JSONArray{
				"https://images.unsplash.com/photo-1570129477492-45c003edd2be?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
			},
			Latitude:     49.2606,
			Longitude:    -123.1016,
			Rating:       4.6,
			DaysOnMarket: 7,
			Status:       "active",
			YearBuilt:    intPtr(1995),
			PropertyType: "house",
		},
		{
			Address:      "789 West 15th Avenue",
			City:         "Vancouver",
			Province:     "BC",
			PostalCode:   "V5Z 1R8",
			Price:        1680000,
			Bedrooms:     5,
			Bathrooms:    4,
			SquareFeet:   3400,
			Neighborhood: "Fairview",
			Description:  "Luxury contemporary townhouse in desirable Fairview. Features include high ceilings, floor-to-ceiling windows, premium finishes, and a rooftop deck with city views. Walking distance to VGH and downtown.",
			Features:     model.JSONArray{"Rooftop Deck", "City Views", "Premium Finishes", "High Ceilings", "Floor-to-ceiling Windows"},
			Images: model.JSONArray{
				"https://images.unsplash.com/photo-1564013799919-ab600027ffc6?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
			},
			Latitude:     49.2606,
			Longitude:    -123.1207,
			Rating:       4.9,
			DaysOnMarket: 14,
			Status:       "price_drop",
			YearBuilt:    intPtr(2020),
			PropertyType: "townhouse",
		},
		{
			Address:      "3201 Dunbar Street",
			City:         "Vancouver",
			Province:     "BC",
			PostalCode:   "V6S 2A4",
			Price:        1125000,
			Bedrooms:     4,
			Bathrooms:    3,
			SquareFeet:   2650,
			Neighborhood: "Dunbar-Southlands",
			Description:  "Elegant family home in quiet Dunbar-Southlands neighborhood. Beautiful landscaping, spacious rooms, and a fully finished basement. Great schools nearby and close to Pacific Spirit Park.",
			Features:     model.JSONArray{"Finished Basement", "Beautiful Landscaping", "Quiet Neighborhood", "Near Good Schools"},
			Images: model.JSONArray{
				"https://images.unsplash.com/photo-1605146769289-440113cc3d00?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
			},
			Latitude:     49.2327,
			Longitude:    -123.1860,
			Rating:       4.7,
			DaysOnMarket: 5,
			Status:       "active",
			YearBuilt:    intPtr(2005),
			PropertyType: "house",
		},
		{
			Address:      "1067 Commercial Drive",
			City:         "Vancouver",
			Province:     "BC",
			PostalCode:   "V5L 3X1",
			Price:        749000,
			Bedrooms:     2,
			Bathrooms:    2,
			SquareFeet:   1850,
			Neighborhood: "Grandview-Woodland",
			Description:  "Modern condo in the heart of Commercial Drive. Open-plan living, stainless steel appliances, and in-suite laundry. Walking distance to cafes, shops, and nightlife. Perfect for urban living.",
			Features:     model.JSONArray{"Open-plan Living", "Stainless Steel Appliances", "In-suite Laundry", "Urban Location"},
			Images: model.JSONArray{
				"https://images.unsplash.com/photo-1449844908441-8829872d2607?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
			},
			Latitude:     49.2756,
			Longitude:    -123.0694,
			Rating:       4.5,
			DaysOnMarket: 4,
			Status:       "open_house",
			YearBuilt:    intPtr(2015),
			PropertyType: "condo",
		},
	}
}
