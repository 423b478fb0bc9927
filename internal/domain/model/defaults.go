package model

// Built-in catalog, served when no database is configured and used by
// cmd/seed to populate one. Prices are PKR.

func DefaultPlans() []*Plan {
	return []*Plan{
		{ID: "weekly", Name: "Weekly Pass", PricePKR: 120, Duration: "1 Week", DurationDays: 7,
			Features: []string{"Unlimited Downloads", "No Ads", "Access 3D Walls"}},
		{ID: "monthly", Name: "Monthly Pro", PricePKR: 350, Duration: "1 Month", DurationDays: 30,
			Features: []string{"All Premium Content", "Priority Support", "High Res 4K"}, Recommended: true},
		{ID: "yearly", Name: "Yearly Elite", PricePKR: 2500, Duration: "1 Year", DurationDays: 365,
			Features: []string{"Best Value", "Exclusive Drops", "Request Wallpapers"}},
		{ID: "lifetime", Name: "Lifetime", PricePKR: 5500, Duration: "Forever", DurationDays: 0,
			Features: []string{"One-time Payment", "VIP Badge", "Founder Status"}},
	}
}

func DefaultMethods() []*PaymentMethod {
	return []*PaymentMethod{
		{ID: MethodJazzCash, Name: "JazzCash", AccountName: "Zeeshan Ali", AccountNumber: "0326 4098088"},
		{ID: MethodEasypaisa, Name: "Easypaisa", AccountName: "Muhammad Ilyas", AccountNumber: "0303 0997911"},
	}
}

func DefaultWallpapers() []*Wallpaper {
	return []*Wallpaper{
		{ID: "1", URL: "https://picsum.photos/400/800?random=1", Title: "Neon City", Category: "Abstract", Likes: 1240, Tags: []string{"neon", "city", "night"}},
		{ID: "2", URL: "https://picsum.photos/400/800?random=2", Title: "Misty Mountains", Category: "Nature", Premium: true, Likes: 3500, Tags: []string{"mountain", "fog", "nature"}},
		{ID: "3", URL: "https://picsum.photos/400/800?random=3", Title: "Cyber Samurai", Category: "Anime", Premium: true, Is3D: true, Likes: 8900, Tags: []string{"anime", "cyberpunk", "sword"}},
		{ID: "4", URL: "https://picsum.photos/400/800?random=4", Title: "Deep Ocean", Category: "Nature", Likes: 450, Tags: []string{"water", "blue", "ocean"}},
		{ID: "5", URL: "https://picsum.photos/400/800?random=5", Title: "Minimal Curves", Category: "Minimal", Premium: true, Likes: 2100, Tags: []string{"abstract", "minimal", "white"}},
		{ID: "6", URL: "https://picsum.photos/400/800?random=6", Title: "Space Voyager", Category: "Trending", Premium: true, Is3D: true, Likes: 5600, Tags: []string{"space", "stars", "planet"}},
		{ID: "7", URL: "https://picsum.photos/400/800?random=7", Title: "Golden Dunes", Category: "Nature", Likes: 120, Tags: []string{"sand", "desert", "gold"}},
		{ID: "8", URL: "https://picsum.photos/400/800?random=8", Title: "Red Sports Car", Category: "Cars", Premium: true, Likes: 9999, Tags: []string{"car", "red", "speed"}},
	}
}
