package kml

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
)

func located(ts time.Time, lat, lon string, sensors entity.SensorValues) *entity.Signal {
	la := decimal.RequireFromString(lat)
	lo := decimal.RequireFromString(lon)
	return &entity.Signal{Timestamp: ts, Latitude: &la, Longitude: &lo, Sensors: sensors}
}

func TestEncodeTrack_PuntosYLinea(t *testing.T) {
	t0 := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	signals := []*entity.Signal{
		located(t0, "4.6", "-74.08", entity.SensorValues{true}),
		{Timestamp: t0.Add(time.Minute)},
		located(t0.Add(2*time.Minute), "4.61", "-74.09", entity.SensorValues{}),
	}

	out, err := NewTrackEncoder().EncodeTrack(&entity.Controller{Name: "Bomba", Address: "300"}, signals)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	assert.Equal(t, namespace, doc.Root().SelectAttrValue("xmlns", ""))

	placemarks := doc.FindElements("//Placemark")
	require.Len(t, placemarks, 3)
	assert.Equal(t, "-74.08,4.6,0", placemarks[0].FindElement("Point/coordinates").Text())
	assert.Equal(t, "activos: sensor1", placemarks[0].FindElement("description").Text())
	assert.Equal(t, "sin sensores activos", placemarks[1].FindElement("description").Text())
	assert.Equal(t, "-74.08,4.6,0 -74.09,4.61,0", placemarks[2].FindElement("LineString/coordinates").Text())
}

func TestEncodeTrack_SinPosiciones(t *testing.T) {
	out, err := NewTrackEncoder().EncodeTrack(&entity.Controller{Name: "Bomba"}, []*entity.Signal{{}})
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	assert.Empty(t, doc.FindElements("//Placemark"))
}
