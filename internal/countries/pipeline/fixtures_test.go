package pipeline

import (
	"fmt"
	"math/rand/v2"

	"worldranks/internal/countries/models"
)

var testRegions = models.AllRegions()

// randomCollection builds n records with deliberately colliding names,
// populations and areas so stability is exercised.
func randomCollection(r *rand.Rand, n int) []models.CountryOverview {
	out := make([]models.CountryOverview, 0, n)
	for i := range n {
		out = append(out, models.CountryOverview{
			Name:        models.Name{Common: fmt.Sprintf("Land%d", r.IntN(5)), Official: fmt.Sprintf("Official %d", i)},
			CCA3:        codeFor(i),
			Independent: r.IntN(2) == 0,
			UNMember:    r.IntN(2) == 0,
			Region:      testRegions[r.IntN(len(testRegions))],
			SubRegion:   fmt.Sprintf("Sub %d", r.IntN(3)),
			Area:        float64(r.IntN(4)) * 1000.5,
			Population:  int64(r.IntN(4)) * 1_000_000,
		})
	}
	return out
}

// codeFor maps i to a unique three-letter code (AAA, AAB, ...).
func codeFor(i int) models.CCA3 {
	b := []byte{'A' + byte(i/676%26), 'A' + byte(i/26%26), 'A' + byte(i%26)}
	return models.MustCCA3(string(b))
}

func positions(collection []models.CountryOverview) map[models.CCA3]int {
	pos := make(map[models.CCA3]int, len(collection))
	for i, c := range collection {
		pos[c.CCA3] = i
	}
	return pos
}
