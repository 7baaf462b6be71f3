package browse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string) error
	POST(path string, body any) error
	PUT(path string, body any) error
	DELETE(path string) error
	GetResponseField(field string) (any, error)
	GetLastResponseBody() []byte
	SessionID() string
	SetSessionID(id string)
}

// RegisterSteps registers browse session and country detail steps.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &browseSteps{tc: tc}

	ctx.Step(`^I start a browse session$`, steps.startSession)
	ctx.Step(`^I view my session$`, steps.viewSession)
	ctx.Step(`^I search for "([^"]*)"$`, steps.searchFor)
	ctx.Step(`^I sort by "([^"]*)"$`, steps.sortBy)
	ctx.Step(`^I toggle the region "([^"]*)"$`, steps.toggleRegion)
	ctx.Step(`^I require the status "([^"]*)"$`, steps.requireStatus)
	ctx.Step(`^I go to page (\d+)$`, steps.goToPage)
	ctx.Step(`^I reset the query$`, steps.resetQuery)
	ctx.Step(`^I end my session$`, steps.endSession)
	ctx.Step(`^I open the country "([^"]*)"$`, steps.openCountry)

	ctx.Step(`^the list should contain at least (\d+) countries$`, steps.listShouldContainAtLeast)
	ctx.Step(`^every listed country should be in "([^"]*)"$`, steps.everyCountryInRegion)
	ctx.Step(`^every listed country should be a UN member$`, steps.everyCountryUNMember)
	ctx.Step(`^the first listed country should be "([^"]*)"$`, steps.firstCountryShouldBe)
	ctx.Step(`^the country should have at least (\d+) neighbours$`, steps.neighboursAtLeast)
}

type browseSteps struct {
	tc TestContext
}

type countryRow struct {
	CCA3     string `json:"cca3"`
	Name     string `json:"name"`
	Region   string `json:"region"`
	UNMember bool   `json:"un_member"`
}

func (s *browseSteps) path(suffix string) string {
	p := "/v1/browse/" + s.tc.SessionID()
	if suffix != "" {
		p += "/" + suffix
	}
	return p
}

func (s *browseSteps) startSession(_ context.Context) error {
	if err := s.tc.POST("/v1/browse", nil); err != nil {
		return err
	}
	id, err := s.tc.GetResponseField("session_id")
	if err != nil {
		return err
	}
	s.tc.SetSessionID(fmt.Sprint(id))
	return nil
}

func (s *browseSteps) viewSession(_ context.Context) error {
	return s.tc.GET(s.path(""))
}

func (s *browseSteps) searchFor(_ context.Context, text string) error {
	return s.tc.PUT(s.path("search"), map[string]string{"text": text})
}

func (s *browseSteps) sortBy(_ context.Context, key string) error {
	return s.tc.PUT(s.path("sort"), map[string]string{"key": key})
}

func (s *browseSteps) toggleRegion(_ context.Context, region string) error {
	return s.tc.POST(s.path("regions/"+url.PathEscape(region)+"/toggle"), nil)
}

func (s *browseSteps) requireStatus(_ context.Context, status string) error {
	return s.tc.PUT(s.path("status"), map[string]any{"status": status, "value": true})
}

func (s *browseSteps) goToPage(_ context.Context, page int) error {
	return s.tc.PUT(s.path("page"), map[string]int{"page": page})
}

func (s *browseSteps) resetQuery(_ context.Context) error {
	return s.tc.POST(s.path("reset"), nil)
}

func (s *browseSteps) endSession(_ context.Context) error {
	return s.tc.DELETE(s.path(""))
}

func (s *browseSteps) openCountry(_ context.Context, code string) error {
	return s.tc.GET("/v1/countries/" + url.PathEscape(code))
}

// rows reads the countries of the last view, whether it came back bare or
// wrapped in a browse result.
func (s *browseSteps) rows() ([]countryRow, error) {
	var doc struct {
		Countries []countryRow `json:"countries"`
		View      *struct {
			Countries []countryRow `json:"countries"`
		} `json:"view"`
	}
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &doc); err != nil {
		return nil, fmt.Errorf("decode view: %w", err)
	}
	if doc.View != nil {
		return doc.View.Countries, nil
	}
	return doc.Countries, nil
}

func (s *browseSteps) listShouldContainAtLeast(_ context.Context, n int) error {
	rows, err := s.rows()
	if err != nil {
		return err
	}
	if len(rows) < n {
		return fmt.Errorf("expected at least %d countries on the page, got %d", n, len(rows))
	}
	return nil
}

func (s *browseSteps) everyCountryInRegion(_ context.Context, region string) error {
	rows, err := s.rows()
	if err != nil {
		return err
	}
	for _, r := range rows {
		if !strings.EqualFold(r.Region, region) {
			return fmt.Errorf("%s (%s) is in %s, not %s", r.Name, r.CCA3, r.Region, region)
		}
	}
	return nil
}

func (s *browseSteps) everyCountryUNMember(_ context.Context) error {
	rows, err := s.rows()
	if err != nil {
		return err
	}
	for _, r := range rows {
		if !r.UNMember {
			return fmt.Errorf("%s (%s) is not a UN member", r.Name, r.CCA3)
		}
	}
	return nil
}

func (s *browseSteps) firstCountryShouldBe(_ context.Context, name string) error {
	rows, err := s.rows()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("expected %q first, got an empty page", name)
	}
	if rows[0].Name != name {
		return fmt.Errorf("expected %q first, got %q", name, rows[0].Name)
	}
	return nil
}

func (s *browseSteps) neighboursAtLeast(_ context.Context, n int) error {
	v, err := s.tc.GetResponseField("neighbours")
	if err != nil {
		return err
	}
	list, ok := v.([]any)
	if !ok || len(list) < n {
		return fmt.Errorf("expected at least %d neighbours, got %v", n, v)
	}
	return nil
}
