package catalog

// Fallback returns the built-in price list served when the catalog table is
// empty or unreachable, so order placement never blocks on catalog
// availability. Also used to seed a fresh table.
func Fallback() []Section {
	return []Section{
		{
			ID:   "Men",
			Name: "Men",
			Items: []Item{
				{
					Name: "Shirt",
					Services: []Service{
						{Type: "Wash Only", Price: 10},
						{Type: "Wash & Iron", Price: 15},
						{Type: "Dry Clean", Price: 25},
					},
				},
				{
					Name: "Pant",
					Services: []Service{
						{Type: "Wash & Iron", Price: 18},
						{Type: "Dry Clean", Price: 28},
					},
				},
				{
					Name:     "Kurta",
					Services: []Service{{Type: "Dry Clean", Price: 30}},
				},
			},
		},
		{
			ID:   "Women",
			Name: "Women",
			Items: []Item{
				{
					Name: "Saree",
					Services: []Service{
						{Type: "Dry Clean", Price: 40},
						{Type: "Wash & Iron", Price: 30},
					},
				},
				{
					Name:     "Leggings",
					Services: []Service{{Type: "Wash & Iron", Price: 15}},
				},
				{
					Name:     "Dress",
					Services: []Service{{Type: "Dry Clean", Price: 50}},
				},
			},
		},
		{
			ID:   "Kids",
			Name: "Kids",
			Items: []Item{
				{
					Name:     "School Uniform",
					Services: []Service{{Type: "Wash & Iron", Price: 10}},
				},
				{
					Name:     "Frock",
					Services: []Service{{Type: "Dry Clean", Price: 20}},
				},
			},
		},
		{
			ID:   "Household",
			Name: "Household",
			Items: []Item{
				{
					Name: "Bedsheet",
					Services: []Service{
						{Type: "Wash Only", Price: 30},
						{Type: "Dry Clean", Price: 50},
					},
				},
				{
					Name:     "Blanket",
					Services: []Service{{Type: "Dry Clean", Price: 80}},
				},
				{
					Name:     "Curtains",
					Services: []Service{{Type: "Dry Clean", Price: 60}},
				},
			},
		},
	}
}
