package pagination

import (
	"errors"
	"fmt"
	"testing"

	"chat-sentry/internal/storage"
)

func makeRecords(n int) []storage.Record {
	out := make([]storage.Record, n)
	for i := range out {
		out[i] = storage.Record{MessageID: fmt.Sprintf("m%d", i)}
	}
	return out
}

func TestPaginate_RejectsBadPageSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := Paginate(makeRecords(3), size, 0)
		if !errors.Is(err, ErrInvalidPageSize) {
			t.Fatalf("pageSize=%d: want ErrInvalidPageSize, got %v", size, err)
		}
	}
}

func TestPaginate_PagesPartitionInOrder(t *testing.T) {
	for _, tc := range []struct{ n, size int }{
		{0, 5}, {1, 5}, {5, 5}, {6, 5}, {12, 5}, {12, 1}, {3, 7},
	} {
		records := makeRecords(tc.n)
		wantCount := (tc.n + tc.size - 1) / tc.size

		var union []storage.Record
		for i := 0; ; i++ {
			page, err := Paginate(records, tc.size, i)
			if err != nil {
				t.Fatalf("n=%d size=%d page %d: %v", tc.n, tc.size, i, err)
			}
			if page.Count != wantCount {
				t.Fatalf("n=%d size=%d: count=%d want %d", tc.n, tc.size, page.Count, wantCount)
			}
			if tc.n == 0 {
				if len(page.Items) != 0 || page.HasPrevious || page.HasNext {
					t.Fatalf("empty set should render empty page: %+v", page)
				}
				break
			}
			union = append(union, page.Items...)
			if !page.HasNext {
				break
			}
		}
		if tc.n > 0 {
			if len(union) != tc.n {
				t.Fatalf("n=%d size=%d: union has %d items", tc.n, tc.size, len(union))
			}
			for i, rec := range union {
				if rec.MessageID != fmt.Sprintf("m%d", i) {
					t.Fatalf("n=%d size=%d: order broken at %d", tc.n, tc.size, i)
				}
			}
		}
	}
}

func TestPaginate_TwelveRecordsPageSizeFive(t *testing.T) {
	records := makeRecords(12)

	p0, err := Paginate(records, 5, 0)
	if err != nil {
		t.Fatalf("page 0: %v", err)
	}
	if p0.Count != 3 || len(p0.Items) != 5 || p0.HasPrevious || !p0.HasNext {
		t.Fatalf("page 0 wrong: %+v", p0)
	}

	p1, err := Paginate(records, 5, 1)
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if len(p1.Items) != 5 || !p1.HasPrevious || !p1.HasNext {
		t.Fatalf("page 1 wrong: %+v", p1)
	}

	p2, err := Paginate(records, 5, 2)
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(p2.Items) != 2 || !p2.HasPrevious || p2.HasNext {
		t.Fatalf("page 2 wrong: %+v", p2)
	}
}

func TestPaginate_ClampsOutOfRangeIndex(t *testing.T) {
	records := makeRecords(12)

	p, err := Paginate(records, 5, -3)
	if err != nil || p.Index != 0 {
		t.Fatalf("negative index not clamped: %+v %v", p, err)
	}
	p, err = Paginate(records, 5, 99)
	if err != nil || p.Index != 2 {
		t.Fatalf("oversized index not clamped: %+v %v", p, err)
	}
	if len(p.Items) != 2 {
		t.Fatalf("clamped page should be the last page: %+v", p)
	}
}
