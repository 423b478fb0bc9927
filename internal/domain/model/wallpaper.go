package model

// Wallpaper is a catalog entry. Premium entries require an entitlement to
// download; the core never mutates these.
type Wallpaper struct {
	ID       string
	URL      string
	Title    string
	Category string
	Premium  bool
	Is3D     bool
	Likes    int
	Tags     []string
}

// WallpaperCategories is the fixed category strip shown in the app.
var WallpaperCategories = []string{
	"Trending", "New", "3D Live", "Nature", "Anime", "Minimal", "Abstract", "Dark", "Cars",
}
