package calendar

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kinnoda-akl/RMA-working-day-calculator/pkg/dateutil"
	"go.uber.org/zap"
)

const sampleCSV = `1/01/2024,2/01/2024
6/02/2024
29/03/2024, 1/04/2024
,
not a date,31/02/2024
25/04/2024,
# comment line
03/06/2024
`

func TestParseHolidayCSV(t *testing.T) {
	set, err := ParseHolidayCSV(strings.NewReader(sampleCSV), zap.NewNop())
	if err != nil {
		t.Fatalf("ParseHolidayCSV() error = %v", err)
	}

	if set.Len() != 7 {
		t.Errorf("Len() = %d, want 7 (dates: %v)", set.Len(), set.Dates())
	}

	for _, want := range []dateutil.Date{
		dateutil.NewDate(2024, 1, 1),
		dateutil.NewDate(2024, 2, 6),
		dateutil.NewDate(2024, 4, 1),
		dateutil.NewDate(2024, 6, 3),
	} {
		if !set.Contains(want) {
			t.Errorf("Contains(%v) = false, want true", want)
		}
	}
}

func TestParseHolidayCSV_Empty(t *testing.T) {
	set, err := ParseHolidayCSV(strings.NewReader(""), zap.NewNop())
	if err != nil {
		t.Fatalf("ParseHolidayCSV() error = %v", err)
	}
	if set.Len() != 0 {
		t.Errorf("Len() = %d, want 0", set.Len())
	}
}

func TestParseHolidayCSV_FieldLevelSkips(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []dateutil.Date
	}{
		{
			name:  "byte order mark",
			input: "\ufeff1/01/2024\n2/01/2024\n",
			want:  []dateutil.Date{dateutil.NewDate(2024, 1, 1), dateutil.NewDate(2024, 1, 2)},
		},
		{
			name:  "byte order mark before quoted field",
			input: "\ufeff\"1/01/2024\",2/01/2024\n",
			want:  []dateutil.Date{dateutil.NewDate(2024, 1, 1), dateutil.NewDate(2024, 1, 2)},
		},
		{
			name:  "stray quote in one field",
			input: "25/12/2024,2\"6/12/2024\n",
			want:  []dateutil.Date{dateutil.NewDate(2024, 12, 25)},
		},
		{
			name:  "stray quote does not affect next row",
			input: "2\"6/12/2024,25/12/2024\n1/01/2025\n",
			want:  []dateutil.Date{dateutil.NewDate(2024, 12, 25), dateutil.NewDate(2025, 1, 1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := ParseHolidayCSV(strings.NewReader(tt.input), zap.NewNop())
			if err != nil {
				t.Fatalf("ParseHolidayCSV() error = %v", err)
			}
			if set.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d (dates: %v)", set.Len(), len(tt.want), set.Dates())
			}
			for _, d := range tt.want {
				if !set.Contains(d) {
					t.Errorf("Contains(%v) = false, want true", d)
				}
			}
		})
	}
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "holidays.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestFileSource_Load(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	src := NewFileSource(writeCSV(t, sampleCSV), logger)

	set, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if set.Len() != 7 {
		t.Errorf("Len() = %d, want 7", set.Len())
	}
}

func TestFileSource_Missing(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "nope.csv"), zap.NewNop())

	if _, err := src.Load(context.Background()); err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestURLSource_Load(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	src := NewURLSource(srv.URL, time.Second, zap.NewNop())
	set, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if set.Len() != 7 {
		t.Errorf("Len() = %d, want 7", set.Len())
	}
}

func TestURLSource_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	src := NewURLSource(srv.URL, time.Second, zap.NewNop())
	if _, err := src.Load(context.Background()); err == nil {
		t.Error("Load() expected error for 404, got nil")
	}
}

func TestCompositeSource_FallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	src := NewSource(srv.URL, writeCSV(t, "6/02/2024\n"), time.Second, zap.NewNop())
	if _, ok := src.(*CompositeSource); !ok {
		t.Fatalf("NewSource() = %T, want *CompositeSource", src)
	}

	set, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !set.Contains(dateutil.NewDate(2024, 2, 6)) {
		t.Errorf("fallback set missing 2024-02-06")
	}
}

func TestCompositeSource_BothFail(t *testing.T) {
	dir := t.TempDir()
	src := NewCompositeSource(
		NewFileSource(filepath.Join(dir, "a.csv"), zap.NewNop()),
		NewFileSource(filepath.Join(dir, "b.csv"), zap.NewNop()),
		zap.NewNop(),
	)

	if _, err := src.Load(context.Background()); err == nil {
		t.Error("Load() expected error when both sources fail, got nil")
	}
}

// blockingSource releases its set only when told to
type blockingSource struct {
	release chan struct{}
	set     *HolidaySet
	err     error
}

func (b *blockingSource) Name() string { return "blocking" }

func (b *blockingSource) Load(ctx context.Context) (*HolidaySet, error) {
	select {
	case <-b.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return b.set, b.err
}

func TestLoader_EmptyUntilLoaded(t *testing.T) {
	waitangi := dateutil.NewDate(2024, 2, 6)
	src := &blockingSource{release: make(chan struct{}), set: NewHolidaySet(waitangi)}
	loader := NewLoader(src, DefaultBlackout, zap.NewNop())

	loader.Start(context.Background())

	if loader.Ready() {
		t.Fatal("Ready() = true before the source returned")
	}
	if !loader.IsWorkingDay(waitangi) {
		t.Error("IsWorkingDay() = false before load, want weekday treated as working")
	}

	close(src.release)
	if err := loader.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	if loader.Classify(waitangi) != DayTypeHoliday {
		t.Errorf("Classify() = %v after load, want holiday", loader.Classify(waitangi))
	}
	if loader.Err() != nil {
		t.Errorf("Err() = %v, want nil", loader.Err())
	}
}

func TestLoader_Degraded(t *testing.T) {
	src := &blockingSource{release: make(chan struct{}), err: errors.New("boom")}
	close(src.release)
	loader := NewLoader(src, DefaultBlackout, zap.NewNop())

	err := loader.Load(context.Background())
	if !errors.Is(err, ErrCalendarDegraded) {
		t.Fatalf("Load() error = %v, want ErrCalendarDegraded", err)
	}

	var degraded *DegradedError
	if !errors.As(loader.Err(), &degraded) || degraded.Source != "blocking" {
		t.Errorf("Err() = %v, want *DegradedError from blocking", loader.Err())
	}

	// weekends and blackout still apply
	if loader.IsWorkingDay(dateutil.NewDate(2024, 3, 2)) {
		t.Error("Saturday classified as working in degraded mode")
	}
	if loader.IsWorkingDay(dateutil.NewDate(2024, 12, 23)) {
		t.Error("blackout day classified as working in degraded mode")
	}
	if !loader.IsWorkingDay(dateutil.NewDate(2024, 3, 4)) {
		t.Error("Monday classified as non-working in degraded mode")
	}
}

func TestLoader_WaitCancelled(t *testing.T) {
	src := &blockingSource{release: make(chan struct{})}
	loader := NewLoader(src, DefaultBlackout, zap.NewNop())
	loader.Start(context.Background())
	defer close(src.release)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := loader.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() error = %v, want deadline exceeded", err)
	}
	if loader.Err() != nil {
		t.Errorf("Err() = %v before load finished, want nil", loader.Err())
	}
}
