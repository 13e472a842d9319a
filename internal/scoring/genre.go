package scoring

import "github.com/Vinuka-CS/seed-to-stream/internal/media"

// genreRarity weights genres by how uncommon they are in the catalog. Rare
// genres earn a larger bonus when shared; anything absent from the table
// counts as a common genre at weight 1.0.
var genreRarity = map[int64]float64{
	10752: 2.0, // War
	99:    2.0, // Documentary
	10770: 2.0, // TV Movie
	37:    1.8, // Western
	10402: 1.8, // Music
	36:    1.8, // History
	27:    1.4, // Horror
	16:    1.4, // Animation
	9648:  1.2, // Mystery
	14:    1.2, // Fantasy
}

func rarityWeight(genreID int64) float64 {
	if weight, ok := genreRarity[genreID]; ok {
		return weight
	}
	return 1.0
}

// genreScore rewards genre overlap with the seed. Overlap fraction dominates;
// bonuses accrue for rare genres, multi-genre matches, and matching the
// seed's genre set exactly.
func genreScore(seed, candidate media.Item) float64 {
	common := seed.SharedGenres(candidate)
	if len(common) == 0 {
		return 0
	}

	seedCount := len(seed.GenreIDs)
	if seedCount < 1 {
		seedCount = 1
	}
	base := float64(len(common)) / float64(seedCount) * 80

	var raritySum float64
	for _, genreID := range common {
		raritySum += rarityWeight(genreID)
	}
	rarityBonus := raritySum / float64(len(common)) * 15
	if rarityBonus > 30 {
		rarityBonus = 30
	}

	var multiBonus float64
	if len(common) > 1 {
		multiBonus = 15
	}

	diversityBonus := float64(len(common)) * 3
	if diversityBonus > 15 {
		diversityBonus = 15
	}

	var perfectBonus float64
	if len(common) == len(seed.GenreIDs) {
		perfectBonus = 10
	}

	return clamp(base+rarityBonus+multiBonus+diversityBonus+perfectBonus, 0, 150)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
