package catalog

import "github.com/ledgercat/ledgercat/internal/model"

// Default returns the built-in catalog used when no catalog file is
// configured.
func Default() *Catalog {
	c, err := New(defaultCategories())
	if err != nil {
		// The built-in data is validated by tests; a failure here is a
		// programming error.
		panic(err)
	}
	return c
}

func defaultCategories() []model.Category {
	type group struct {
		id   string
		name string
	}

	food := group{"food", "Food"}
	transport := group{"transport", "Transport"}
	housing := group{"housing", "Housing"}
	utilities := group{"utilities", "Utilities"}
	lifestyle := group{"lifestyle", "Lifestyle"}
	health := group{"health", "Health"}
	appearance := group{"appearance", "Appearance"}
	household := group{"household", "Household"}
	education := group{"education", "Education"}
	professional := group{"professional", "Professional Services"}

	defs := []struct {
		id    string
		name  string
		group group
	}{
		{"groc_01", "Supermarkets and grocery stores", food},
		{"rest_01", "Restaurants and cafes", food},
		{"fast_01", "Takeaways and fast food", food},
		{"alco_01", "Bars and liquor stores", food},

		{"fuel_01", "Petrol stations", transport},
		{"park_01", "Parking and tolls", transport},
		{"publ_01", "Public transport", transport},
		{"taxi_01", "Taxis and ride sharing", transport},
		{"auto_01", "Vehicle servicing and repairs", transport},

		{"rent_01", "Rent", housing},
		{"mort_01", "Mortgage payments", housing},
		{"rate_01", "Rates and body corporate", housing},
		{"main_01", "Home maintenance", housing},

		{"powr_01", "Power and gas", utilities},
		{"watr_01", "Water", utilities},
		{"tele_01", "Phone and internet", utilities},

		{"ente_01", "Entertainment and events", lifestyle},
		{"subs_01", "Subscriptions and streaming", lifestyle},
		{"trav_01", "Travel and accommodation", lifestyle},
		{"hobb_01", "Hobbies and sports", lifestyle},
		{"gift_01", "Gifts and donations", lifestyle},

		{"doct_01", "Doctors and dentists", health},
		{"phar_01", "Pharmacies", health},
		{"insu_01", "Health insurance", health},
		{"gym_01", "Gyms and fitness", health},

		{"clth_01", "Clothing and footwear", appearance},
		{"hair_01", "Hairdressers and beauty", appearance},

		{"furn_01", "Furniture and appliances", household},
		{"elec_01", "Electronics and computing", household},
		{"pets_01", "Pet care", household},
		{"gard_01", "Garden and hardware", household},

		{"tuit_01", "Tuition and courses", education},
		{"book_01", "Books and stationery", education},
		{"chld_01", "Childcare", education},

		{"acct_01", "Accounting and legal", professional},
		{"bank_01", "Bank fees and interest", professional},
		{"govt_01", "Government and taxes", professional},
	}

	categories := make([]model.Category, 0, len(defs))
	for _, d := range defs {
		categories = append(categories, model.Category{
			ID:        d.id,
			Name:      d.name,
			GroupID:   d.group.id,
			GroupName: d.group.name,
		})
	}
	return categories
}
