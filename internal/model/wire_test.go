package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dwa/backend/internal/model"
)

// ── CodeList ──────────────────────────────────────────────────────────────

func TestCodeList_Shapes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want model.CodeList
	}{
		{"list of strings", `["2171","2172"]`, model.CodeList{"2171", "2172"}},
		{"scalar string", `"54"`, model.CodeList{"54"}},
		{"scalar number", `2171`, model.CodeList{"2171"}},
		{"mixed list", `[2171,"0012",null,""]`, model.CodeList{"2171", "0012"}},
		{"null", `null`, nil},
		{"empty string", `""`, nil},
		{"object is dropped", `{"a":1}`, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var got model.CodeList
			require.NoError(t, json.Unmarshal([]byte(c.in), &got))
			assert.Equal(t, c.want, got)
		})
	}
}

func TestCodeList_First(t *testing.T) {
	assert.Equal(t, "", model.CodeList(nil).First())
	assert.Equal(t, "2171", model.CodeList{"2171", "9999"}.First())
}

// ── RawPosting ────────────────────────────────────────────────────────────

func TestRawPosting_Decode(t *testing.T) {
	body := `{
		"job_title": "Backend Developer",
		"employer": "Acme",
		"url": "https://x/1",
		"post_date": "2024-03-01T10:00:00Z",
		"expiry_date": "not a date",
		"location": {"lat": 43.65, "lon": -79.38},
		"derived_location": "45.5,-73.6",
		"harmonized_wage": "31.5",
		"wage_value": null,
		"nocs_2021": ["2171"],
		"naics": 54,
		"skill_names": ["Go", "SQL"]
	}`

	var raw model.RawPosting
	require.NoError(t, json.Unmarshal([]byte(body), &raw))

	assert.Equal(t, "Backend Developer", raw.JobTitle)
	require.NotNil(t, raw.PostDate.Ptr())
	assert.True(t, raw.PostDate.Ptr().Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))
	assert.Nil(t, raw.ExpiryDate.Ptr())

	require.NotNil(t, raw.Location.Point())
	assert.Equal(t, model.GeoPoint{Lat: 43.65, Lon: -79.38}, *raw.Location.Point())
	require.NotNil(t, raw.Derived.Point())
	assert.Equal(t, model.GeoPoint{Lat: 45.5, Lon: -73.6}, *raw.Derived.Point())

	require.NotNil(t, raw.HarmonizedWage.Ptr())
	assert.InDelta(t, 31.5, *raw.HarmonizedWage.Ptr(), 1e-9)
	assert.Nil(t, raw.WageValue.Ptr())

	assert.Equal(t, "2171", raw.NOCs.First())
	assert.Equal(t, "54", raw.NAICS.First())
	assert.Equal(t, model.CodeList{"Go", "SQL"}, raw.SkillNames)
}

func TestFlexGeoPoint_ArrayIsLonLat(t *testing.T) {
	var g model.FlexGeoPoint
	require.NoError(t, json.Unmarshal([]byte(`[-79.38, 43.65]`), &g))
	require.NotNil(t, g.Point())
	assert.Equal(t, 43.65, g.Point().Lat)
	assert.Equal(t, -79.38, g.Point().Lon)
}

func TestFlexGeoPoint_MissingCoordinate(t *testing.T) {
	var g model.FlexGeoPoint
	require.NoError(t, json.Unmarshal([]byte(`{"lat": 43.65}`), &g))
	assert.Nil(t, g.Point())

	var nilPoint *model.FlexGeoPoint
	assert.Nil(t, nilPoint.Point())
}

func TestJobPosting_Coordinates(t *testing.T) {
	primary := &model.GeoPoint{Lat: 1, Lon: 2}
	derived := &model.GeoPoint{Lat: 3, Lon: 4}

	j := model.JobPosting{Location: primary, DerivedLocation: derived}
	p, ok := j.Coordinates()
	assert.True(t, ok)
	assert.Equal(t, *primary, p)

	j = model.JobPosting{DerivedLocation: derived}
	p, ok = j.Coordinates()
	assert.True(t, ok)
	assert.Equal(t, *derived, p)

	j = model.JobPosting{}
	_, ok = j.Coordinates()
	assert.False(t, ok)
}

func TestUser_PasswordNeverSerialised(t *testing.T) {
	b, err := json.Marshal(model.User{ID: 1, Email: "a@b.c", Password: "hash"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "hash")
	assert.Contains(t, string(b), `"email":"a@b.c"`)
}
