package cleaning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobclean/internal/types"
)

func TestNormalizeLocation(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"NYC", "New York"},
		{"new york city", "New York"},
		{"NY", "New York"},
		{"SF", "San Francisco"},
		{"LA", "Los Angeles"},
		{"washington dc", "Washington"},
		{"DC", "Washington"},
		{"Remote - USA", "Remote - United States"},
		{"   boston  ", "Boston"},
		{"London, UK", "London, United Kingdom"},
		{"Dubai, UAE", "Dubai, United Arab Emirates"},
		{"Riyadh, KSA", "Riyadh, Saudi Arabia"},
		{"Austin, US", "Austin, United States"},
		{"philly", "Philadelphia"},
		{"VEGAS", "Las Vegas"},
		{"Atlanta, GA", "Atlanta, Ga"},
		{"san   francisco\tbay area", "San Francisco Bay Area"},
		{"New York", "New York"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLocation(tt.input))
		})
	}
}

func TestNormalizeLocation_WholeWordsOnly(t *testing.T) {
	// "la" inside "atlanta" and "us" inside "houston" stay put
	assert.Equal(t, "Atlanta", NormalizeLocation("atlanta"))
	assert.Equal(t, "Houston", NormalizeLocation("houston"))
	assert.Equal(t, "Sfo Airport", NormalizeLocation("SFO airport"))

	// accented letters are word characters too
	for _, place := range []string{"Nyíregyháza", "Sfântu Gheorghe", "Laâyoune"} {
		assert.Equal(t, place, NormalizeLocation(place))
	}
	assert.Equal(t, "Ny2", NormalizeLocation("ny2"))
	assert.Equal(t, "Sf_West", NormalizeLocation("sf_west"))
}

func TestWordRule_Replace(t *testing.T) {
	rule := wordRule{from: "ny", to: "new york"}

	tests := []struct {
		input string
		want  string
	}{
		{"ny", "new york"},
		{"ny ny", "new york new york"},
		{"ny,ny", "new york,new york"},
		{"albany ny", "albany new york"},
		{"nyíregyháza", "nyíregyháza"},
		{"ényó ny", "ényó new york"},
		{"nyny", "nyny"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, rule.replace(tt.input))
		})
	}
}

func TestNormalizeLocation_Idempotent(t *testing.T) {
	for _, input := range []string{"NYC", "Remote - USA", "london, uk", "   boston  "} {
		once := NormalizeLocation(input)
		assert.Equal(t, once, NormalizeLocation(once), input)
	}
}

func TestLocationAbbreviations_Order(t *testing.T) {
	want := []Abbreviation{
		{"washington dc", "washington"},
		{"new york city", "new york"},
		{"ny", "new york"},
		{"nyc", "new york"},
		{"sf", "san francisco"},
		{"la", "los angeles"},
		{"dc", "washington"},
		{"philly", "philadelphia"},
		{"vegas", "las vegas"},
		{"ksa", "saudi arabia"},
		{"uae", "united arab emirates"},
		{"uk", "united kingdom"},
		{"usa", "united states"},
		{"us", "united states"},
	}
	assert.Equal(t, want, LocationAbbreviations())
}

func TestLocationAbbreviations_OrderMatters(t *testing.T) {
	table := LocationAbbreviations()
	reversed := make([]Abbreviation, 0, len(table))
	for i := len(table) - 1; i >= 0; i-- {
		reversed = append(reversed, table[i])
	}

	assert.Equal(t, "washington", applyWordRules("washington dc", compileWordRules(table)))
	assert.Equal(t, "washington washington", applyWordRules("washington dc", compileWordRules(reversed)))
}

func TestLocationAbbreviations_ReturnsCopy(t *testing.T) {
	table := LocationAbbreviations()
	table[0] = Abbreviation{"x", "y"}
	assert.Equal(t, "washington dc", LocationAbbreviations()[0].From)
}

func TestAcronymRestore(t *testing.T) {
	assert.Equal(t, "Washington DC, USA", applyWordRules("Washington Dc, Usa", acronymRules))
	assert.Equal(t, "Uk2", applyWordRules("Uk2", acronymRules))
	assert.Equal(t, "UK and UAE", applyWordRules("Uk and Uae", acronymRules))
	assert.Equal(t, "Ukäne", applyWordRules("Ukäne", acronymRules))
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"new york", "New York"},
		{"remote - united states", "Remote - United States"},
		{"o'brien", "O'Brien"},
		{"3rd street", "3Rd Street"},
		{"MIXED case", "Mixed Case"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, titleCase(tt.input))
		})
	}
}

func TestNormalizeLocations_Stage(t *testing.T) {
	unchanged := job("Engineer", "Acme", "New York")
	changed := job("Analyst", "Beta", "NYC")
	numeric := job("Designer", "Gamma", "")
	numeric[types.FieldLocation] = 94105
	empty := job("Writer", "Delta", "")

	records := []types.JobRecord{unchanged, changed, numeric, empty}
	count := NewProcessor().normalizeLocations(records)

	assert.Equal(t, 1, count)

	assert.Equal(t, "New York", unchanged[types.FieldLocation])
	assert.NotContains(t, unchanged, types.FieldOriginalLocation)

	assert.Equal(t, "New York", changed[types.FieldLocation])
	require.Contains(t, changed, types.FieldOriginalLocation)
	assert.Equal(t, "NYC", changed[types.FieldOriginalLocation])

	assert.Equal(t, 94105, numeric[types.FieldLocation])
	assert.NotContains(t, numeric, types.FieldOriginalLocation)
	assert.NotContains(t, empty, types.FieldOriginalLocation)
}
