package server

import "github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/domain/models"

// Each action picks its representation explicitly: list, create and the
// updates return summaries, retrieve returns the detail, upload-image the
// image.

type AttributeRepr struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type WhiskeySummary struct {
	ID     int64    `json:"id"`
	Brand  string   `json:"brand"`
	Style  string   `json:"style"`
	Year   *int     `json:"year"`
	Price  *float64 `json:"price"`
	Link   string   `json:"link"`
	Tags   []int64  `json:"tags"`
	Places []int64  `json:"places"`
}

type WhiskeyDetail struct {
	ID     int64           `json:"id"`
	Brand  string          `json:"brand"`
	Style  string          `json:"style"`
	Year   *int            `json:"year"`
	Price  *float64        `json:"price"`
	Link   string          `json:"link"`
	Tags   []AttributeRepr `json:"tags"`
	Places []AttributeRepr `json:"places"`
}

type WhiskeyImage struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
}

func attributeRepr(a models.Attribute) AttributeRepr {
	return AttributeRepr{ID: a.ID, Name: a.Name}
}

func attributeReprs(attrs []models.Attribute) []AttributeRepr {
	res := make([]AttributeRepr, 0, len(attrs))
	for _, a := range attrs {
		res = append(res, attributeRepr(a))
	}

	return res
}

func whiskeySummary(w models.Whiskey) WhiskeySummary {
	return WhiskeySummary{
		ID:     w.ID,
		Brand:  w.Brand,
		Style:  w.Style,
		Year:   w.Year,
		Price:  w.Price,
		Link:   w.Link,
		Tags:   ids(w.TagIDs),
		Places: ids(w.PlaceIDs),
	}
}

func whiskeySummaries(whiskeys []models.Whiskey) []WhiskeySummary {
	res := make([]WhiskeySummary, 0, len(whiskeys))
	for _, w := range whiskeys {
		res = append(res, whiskeySummary(w))
	}

	return res
}

func whiskeyDetail(d models.WhiskeyDetail) WhiskeyDetail {
	return WhiskeyDetail{
		ID:     d.ID,
		Brand:  d.Brand,
		Style:  d.Style,
		Year:   d.Year,
		Price:  d.Price,
		Link:   d.Link,
		Tags:   attributeReprs(d.Tags),
		Places: attributeReprs(d.Places),
	}
}

func whiskeyImage(w models.Whiskey, url string) WhiskeyImage {
	return WhiskeyImage{ID: w.ID, Image: url}
}

// ids never renders as null.
func ids(v []int64) []int64 {
	if v == nil {
		return []int64{}
	}

	return v
}
