package services

import (
	"net/url"
	"testing"
)

func TestParsePageParamsDefaults(t *testing.T) {
	p := ParsePageParams(url.Values{})
	if p.Page != 1 || p.Limit != DefaultPageLimit {
		t.Fatalf("expected defaults, got page=%d limit=%d", p.Page, p.Limit)
	}

	p = ParsePageParams(url.Values{"page": {"0"}, "limit": {"junk"}})
	if p.Page != 1 || p.Limit != DefaultPageLimit {
		t.Fatalf("garbage input should fall back to defaults, got %+v", p)
	}

	p = ParsePageParams(url.Values{"page": {"3"}, "limit": {"10"}})
	if p.Page != 3 || p.Limit != 10 {
		t.Fatalf("expected page=3 limit=10, got %+v", p)
	}
	if p.Offset() != 20 {
		t.Fatalf("expected offset 20, got %d", p.Offset())
	}
}

func TestBuildPageLinks(t *testing.T) {
	// 13 items, 6 per page: pages 1..3.
	page := BuildPage(13, nil, "/api/recipes/", PageParams{Page: 1, Limit: 6})
	if page.Previous != nil {
		t.Fatalf("first page should have no previous, got %v", *page.Previous)
	}
	if page.Next == nil || *page.Next != "/api/recipes/?page=2&limit=6" {
		t.Fatalf("unexpected next link: %v", page.Next)
	}

	page = BuildPage(13, nil, "/api/recipes/", PageParams{Page: 3, Limit: 6})
	if page.Next != nil {
		t.Fatalf("last page should have no next, got %v", *page.Next)
	}
	if page.Previous == nil || *page.Previous != "/api/recipes/?page=2&limit=6" {
		t.Fatalf("unexpected previous link: %v", page.Previous)
	}

	page = BuildPage(0, nil, "/api/recipes/", PageParams{Page: 1, Limit: 6})
	if page.Next != nil || page.Previous != nil {
		t.Fatalf("empty listing should have no links")
	}
}
