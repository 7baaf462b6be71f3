package handler

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/dustin/go-humanize"

	"worldranks/internal/countries/browse"
	"worldranks/internal/countries/ingest"
	"worldranks/internal/countries/models"
	"worldranks/internal/countries/query"
	"worldranks/internal/countries/service"
	pstrings "worldranks/pkg/platform/strings"
)

const (
	siteName     = "WorldRanks"
	homeTitle    = "Home"
	noData       = "No data"
	emptyMessage = "No countries found. Try expanding your filters."
)

// PageTitle is the document title shown for a page.
func PageTitle(title string) string {
	return title + " | " + siteName
}

// BrowseResponse is returned when a session is created or refreshed.
type BrowseResponse struct {
	SessionID string            `json:"session_id"`
	View      *ViewResponse     `json:"view"`
	Warnings  []WarningResponse `json:"warnings"`
}

// WarningResponse describes a country record skipped during ingestion.
type WarningResponse struct {
	Index    int    `json:"index"`
	CCA3     string `json:"cca3,omitempty"`
	Field    string `json:"field"`
	RawValue string `json:"raw_value"`
	Message  string `json:"message"`
}

// ViewResponse is the visible state of a browse session.
type ViewResponse struct {
	Title        string        `json:"title"`
	Found        string        `json:"found"`
	MatchCount   int           `json:"match_count"`
	CurrentPage  int           `json:"current_page"`
	TotalPages   int           `json:"total_pages"`
	PageSize     int           `json:"page_size"`
	Pages        []PageButton  `json:"pages"`
	Query        QueryResponse `json:"query"`
	Countries    []CountryRow  `json:"countries"`
	EmptyMessage string        `json:"empty_message,omitempty"`
	Loading      bool          `json:"loading"`
}

// PageButton is one pagination control. Index is what PUT .../page expects;
// Label is the 1-based number shown to users.
type PageButton struct {
	Index   int    `json:"index"`
	Label   string `json:"label"`
	Current bool   `json:"current"`
}

type QueryResponse struct {
	SearchText string            `json:"search_text"`
	SortKey    string            `json:"sort_key"`
	Regions    []string          `json:"regions"`
	Status     query.StatusFlags `json:"status"`
}

type CountryRow struct {
	CCA3              string  `json:"cca3"`
	Name              string  `json:"name"`
	OfficialName      string  `json:"official_name"`
	Flag              string  `json:"flag"`
	Population        int64   `json:"population"`
	PopulationDisplay string  `json:"population_display"`
	Area              float64 `json:"area"`
	AreaDisplay       string  `json:"area_display"`
	Region            string  `json:"region"`
	SubRegion         string  `json:"sub_region"`
	Independent       bool    `json:"independent"`
	UNMember          bool    `json:"un_member"`
}

// FromView converts a store snapshot to its HTTP representation.
func FromView(v browse.View) *ViewResponse {
	resp := &ViewResponse{
		Title:       PageTitle(homeTitle),
		Found:       fmt.Sprintf("Found %d countries", v.MatchCount),
		MatchCount:  v.MatchCount,
		CurrentPage: v.CurrentPage,
		TotalPages:  v.TotalPages,
		PageSize:    v.PageSize,
		Pages:       make([]PageButton, 0, v.TotalPages),
		Query: QueryResponse{
			SearchText: v.Query.SearchText,
			SortKey:    v.Query.SortKey.String(),
			Regions:    make([]string, 0, v.Query.Regions.Len()),
			Status:     v.Query.Status,
		},
		Countries: make([]CountryRow, 0, len(v.VisibleSlice)),
		Loading:   !v.Loaded,
	}
	for i := range v.TotalPages {
		resp.Pages = append(resp.Pages, PageButton{Index: i, Label: strconv.Itoa(i + 1), Current: i == v.CurrentPage})
	}
	for _, r := range v.Query.SelectedRegions() {
		resp.Query.Regions = append(resp.Query.Regions, r.String())
	}
	for _, c := range v.VisibleSlice {
		resp.Countries = append(resp.Countries, fromOverview(c))
	}
	if v.Loaded && v.MatchCount == 0 {
		resp.EmptyMessage = emptyMessage
	}
	return resp
}

func fromOverview(c models.CountryOverview) CountryRow {
	return CountryRow{
		CCA3:              c.CCA3.String(),
		Name:              c.Name.Common,
		OfficialName:      c.Name.Official,
		Flag:              c.FlagImageURL(),
		Population:        c.Population,
		PopulationDisplay: humanize.Comma(c.Population),
		Area:              c.Area,
		AreaDisplay:       humanize.Commaf(c.Area),
		Region:            c.Region.String(),
		SubRegion:         c.SubRegion,
		Independent:       c.Independent,
		UNMember:          c.UNMember,
	}
}

// FromBrowseResult converts a created or refreshed session.
func FromBrowseResult(res *service.BrowseResult) *BrowseResponse {
	resp := &BrowseResponse{
		SessionID: res.SessionID.String(),
		View:      FromView(res.View),
		Warnings:  make([]WarningResponse, 0, len(res.Warnings)),
	}
	for _, w := range res.Warnings {
		resp.Warnings = append(resp.Warnings, fromWarning(w))
	}
	return resp
}

func fromWarning(w ingest.Warning) WarningResponse {
	msg := ""
	if w.Err != nil {
		msg = w.Err.Error()
	}
	return WarningResponse{Index: w.Index, CCA3: w.CCA3, Field: w.Field, RawValue: w.RawValue, Message: msg}
}

// DetailResponse is the country detail page.
type DetailResponse struct {
	Title             string              `json:"title"`
	Name              string              `json:"name"`
	OfficialName      string              `json:"official_name"`
	Flag              string              `json:"flag"`
	Population        int64               `json:"population"`
	PopulationDisplay string              `json:"population_display"`
	Area              float64             `json:"area"`
	AreaDisplay       string              `json:"area_display"`
	Capital           string              `json:"capital"`
	SubRegion         string              `json:"sub_region"`
	Languages         string              `json:"languages"`
	Currencies        string              `json:"currencies"`
	Continent         string              `json:"continent"`
	Neighbours        []NeighbourResponse `json:"neighbours"`
}

type NeighbourResponse struct {
	CCA3 string `json:"cca3"`
	Name string `json:"name"`
	Flag string `json:"flag"`
}

// FromDetail formats a country for the detail page. Lists are sorted and
// empty values read "No data".
func FromDetail(d *models.CountryDetail) *DetailResponse {
	c := d.Country
	subRegion := noData
	if c.SubRegion != nil && *c.SubRegion != "" {
		subRegion = *c.SubRegion
	}

	currencies := make([]string, 0, len(c.Currencies))
	for _, cur := range c.Currencies {
		currencies = append(currencies, cur.Name)
	}

	resp := &DetailResponse{
		Title:             PageTitle(c.Name.Common),
		Name:              c.Name.Common,
		OfficialName:      c.Name.Official,
		Flag:              c.Flags.SVG,
		Population:        c.Population,
		PopulationDisplay: humanize.Comma(c.Population),
		Area:              c.Area,
		AreaDisplay:       humanize.Commaf(c.Area),
		Capital:           joinSorted(slices.Clone(c.Capital)),
		SubRegion:         subRegion,
		Languages:         joinSorted(slices.Collect(maps.Values(c.Languages))),
		Currencies:        joinSorted(currencies),
		Continent:         c.Region,
		Neighbours:        make([]NeighbourResponse, 0, len(d.Neighbours)),
	}
	for _, n := range d.Neighbours {
		resp.Neighbours = append(resp.Neighbours, NeighbourResponse{
			CCA3: n.CCA3.String(),
			Name: n.Name.Common,
			Flag: n.Flags.SVG,
		})
	}
	return resp
}

func joinSorted(values []string) string {
	slices.Sort(values)
	if joined := pstrings.JoinDistinct(values, ", "); joined != "" {
		return joined
	}
	return noData
}

// OptionsResponse lists the values the browse controls are built from.
type OptionsResponse struct {
	SortKeys []string         `json:"sort_keys"`
	Regions  []string         `json:"regions"`
	Statuses []StatusResponse `json:"statuses"`
}

type StatusResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

func buildOptions() *OptionsResponse {
	resp := &OptionsResponse{}
	for _, k := range query.AllSortKeys() {
		resp.SortKeys = append(resp.SortKeys, k.String())
	}
	for _, r := range models.AllRegions() {
		resp.Regions = append(resp.Regions, r.String())
	}
	for _, s := range query.AllStatuses() {
		resp.Statuses = append(resp.Statuses, StatusResponse{Key: string(s), Label: s.Label()})
	}
	return resp
}
