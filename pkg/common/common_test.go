package common

import (
	"strings"
	"testing"
)

func TestGenerateBatchID(t *testing.T) {
	id := GenerateBatchID()
	if !strings.HasPrefix(id, "BATCH-") {
		t.Errorf("Expected BATCH- prefix, got %s", id)
	}

	other := GenerateBatchID()
	if id == other {
		t.Errorf("Expected distinct batch ids, got %s twice", id)
	}
}

func TestPaginateResponse(t *testing.T) {
	total := int64(100)
	page := 1
	limit := 10
	data := []string{"item1", "item2"}

	res := PaginateResponse(data, total, page, limit, "")

	if res.CurrentPage != 1 {
		t.Errorf("Expected CurrentPage 1, got %d", res.CurrentPage)
	}
	if res.LastPage != 10 {
		t.Errorf("Expected LastPage 10, got %d", res.LastPage)
	}
	if res.NextPage != 2 {
		t.Errorf("Expected NextPage 2, got %d", res.NextPage)
	}
	if res.PrevPage != 0 {
		t.Errorf("Expected PrevPage 0, got %d", res.PrevPage)
	}
	if res.Count != 100 {
		t.Errorf("Expected Count 100, got %d", res.Count)
	}

	// Last page
	page = 10
	res = PaginateResponse(data, total, page, limit, "")
	if res.NextPage != 0 {
		t.Errorf("Expected NextPage 0 for last page, got %d", res.NextPage)
	}

	// Middle page
	page = 5
	res = PaginateResponse(data, total, page, limit, "")
	if res.PrevPage != 4 {
		t.Errorf("Expected PrevPage 4, got %d", res.PrevPage)
	}
	if res.NextPage != 6 {
		t.Errorf("Expected NextPage 6, got %d", res.NextPage)
	}
}
