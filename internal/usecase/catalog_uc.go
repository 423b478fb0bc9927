package usecase

import (
	"context"
	"strings"

	"wallpaper-unlock/internal/domain/model"
	"wallpaper-unlock/internal/domain/ports/repository"
)

// CatalogUseCase serves the wallpaper grid. Presentation glue around the
// repository; "Trending" is the unfiltered default, any other category also
// matches tags the way the app's category strip does.
type CatalogUseCase struct {
	wallpapers repository.WallpaperRepository
}

func NewCatalogUseCase(wallpapers repository.WallpaperRepository) *CatalogUseCase {
	return &CatalogUseCase{wallpapers: wallpapers}
}

func (uc *CatalogUseCase) Categories() []string {
	return model.WallpaperCategories
}

func (uc *CatalogUseCase) List(ctx context.Context, category string) ([]*model.Wallpaper, error) {
	if category == "" || category == "Trending" {
		return uc.wallpapers.ListAll(ctx)
	}
	byCat, err := uc.wallpapers.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	// Tag matches supplement the category filter.
	all, err := uc.wallpapers.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(byCat))
	for _, w := range byCat {
		seen[w.ID] = true
	}
	tag := strings.ToLower(category)
	for _, w := range all {
		if seen[w.ID] {
			continue
		}
		for _, t := range w.Tags {
			if t == tag {
				byCat = append(byCat, w)
				break
			}
		}
	}
	return byCat, nil
}
