package cli

import (
	"testing"

	"github.com/ionutms/schemascope/pkg/errors"
	"github.com/ionutms/schemascope/pkg/treemap"
)

func TestLevelFlagsFilter(t *testing.T) {
	t.Run("no flags means no filter", func(t *testing.T) {
		var f levelFlags
		filter, err := f.filter()
		if err != nil {
			t.Fatalf("filter error: %v", err)
		}
		if filter != nil {
			t.Errorf("filter = %+v, want nil", filter)
		}
	})

	t.Run("set levels", func(t *testing.T) {
		f := levelFlags{level1: "0:5", level3: "1:4"}
		filter, err := f.filter()
		if err != nil {
			t.Fatalf("filter error: %v", err)
		}
		if filter.Level1 == nil || *filter.Level1 != (treemap.Range{Start: 0, End: 5}) {
			t.Errorf("Level1 = %v, want 0:5", filter.Level1)
		}
		if filter.Level2 != nil {
			t.Error("Level2 should stay unset")
		}
		if filter.Level3 == nil || *filter.Level3 != (treemap.Range{Start: 1, End: 4}) {
			t.Errorf("Level3 = %v, want 1:4", filter.Level3)
		}
	})

	t.Run("malformed range", func(t *testing.T) {
		f := levelFlags{level2: "abc"}
		if _, err := f.filter(); !errors.Is(err, errors.ErrCodeInvalidRange) {
			t.Errorf("filter error = %v, want %s", err, errors.ErrCodeInvalidRange)
		}
	})
}

func TestCountsLine(t *testing.T) {
	got := countsLine(treemap.Counts{Level1: 5, Level2: 3, Level3: 7})
	if got != "levels 5/3/7" {
		t.Errorf("countsLine = %q", got)
	}
}
