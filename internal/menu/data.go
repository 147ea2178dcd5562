package menu

import "github.com/shopspring/decimal"

func rupees(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

var defaultItems = []Item{
	{
		ID: "1", Name: "Masala Dosa", Category: SouthIndian, Price: rupees(60), IsVeg: true,
		Description: "Crispy rice crepe filled with spiced potato, served with chutney and sambar.",
		ImageURL:    "/img/masala-dosa.jpg",
	},
	{
		ID: "2", Name: "Idli Vada", Category: SouthIndian, Price: rupees(45), IsVeg: true,
		Description: "Two steamed rice cakes and a crunchy lentil vada with sambar.",
		ImageURL:    "/img/idli-vada.jpg",
	},
	{
		ID: "3", Name: "Onion Uttapam", Category: SouthIndian, Price: rupees(70), IsVeg: true,
		Description: "Thick rice pancake topped with onions, chillies and coriander.",
		ImageURL:    "/img/uttapam.jpg", IsSpicy: true,
	},
	{
		ID: "4", Name: "Chicken Biryani", Category: NorthIndian, Price: rupees(150),
		Description: "Long-grain basmati layered with spiced chicken, fried onions and mint.",
		ImageURL:    "/img/chicken-biryani.jpg", IsSpicy: true,
	},
	{
		ID: "5", Name: "Veg Thali", Category: NorthIndian, Price: rupees(120), IsVeg: true,
		Description: "Dal, two sabzis, rice, rotis, salad and a sweet.",
		ImageURL:    "/img/veg-thali.jpg",
	},
	{
		ID: "6", Name: "Paneer Butter Masala", Category: NorthIndian, Price: rupees(130), IsVeg: true,
		Description: "Cottage cheese in a rich tomato and butter gravy, with two rotis.",
		ImageURL:    "/img/paneer-butter-masala.jpg",
	},
	{
		ID: "7", Name: "Chole Bhature", Category: NorthIndian, Price: rupees(90), IsVeg: true,
		Description: "Spicy chickpea curry with two fluffy fried breads.",
		ImageURL:    "/img/chole-bhature.jpg", IsSpicy: true,
	},
	{
		ID: "8", Name: "Samosa", Category: Snacks, Price: rupees(20), IsVeg: true,
		Description: "Golden pastry stuffed with spiced potato and peas.",
		ImageURL:    "/img/samosa.jpg",
	},
	{
		ID: "9", Name: "Vada Pav", Category: Snacks, Price: rupees(25), IsVeg: true,
		Description: "Potato fritter in a soft bun with garlic and green chutneys.",
		ImageURL:    "/img/vada-pav.jpg", IsSpicy: true,
	},
	{
		ID: "10", Name: "Egg Puff", Category: Snacks, Price: rupees(30),
		Description: "Flaky puff pastry with a masala boiled egg.",
		ImageURL:    "/img/egg-puff.jpg",
	},
	{
		ID: "11", Name: "Filter Coffee", Category: Beverages, Price: rupees(25), IsVeg: true,
		Description: "Strong South Indian decoction coffee with frothed milk.",
		ImageURL:    "/img/filter-coffee.jpg",
	},
	{
		ID: "12", Name: "Masala Chai", Category: Beverages, Price: rupees(15), IsVeg: true,
		Description: "Milky tea brewed with ginger, cardamom and spices.",
		ImageURL:    "/img/masala-chai.jpg",
	},
	{
		ID: "13", Name: "Mango Lassi", Category: Beverages, Price: rupees(50), IsVeg: true,
		Description: "Chilled yoghurt blended with ripe mango pulp.",
		ImageURL:    "/img/mango-lassi.jpg",
	},
}

// Default returns the campus canteen menu.
func Default() *Catalog {
	c, err := New(defaultItems)
	if err != nil {
		panic(err)
	}
	return c
}
