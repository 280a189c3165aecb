package kml

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/Telemetria-api/internal/application/analytics"
	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
)

var _ analytics.TrackEncoder = (*TrackEncoder)(nil)

const namespace = "http://www.opengis.net/kml/2.2"

// TrackEncoder exporta las posiciones reportadas por un controlador como KML:
// una línea con el recorrido y un punto por señal con su hora y sensores activos.
type TrackEncoder struct{}

// NewTrackEncoder construye el codificador.
func NewTrackEncoder() *TrackEncoder { return &TrackEncoder{} }

// EncodeTrack recibe las señales de la más antigua a la más reciente. Las señales sin
// coordenadas se omiten; sin ninguna posición el documento queda sin placemarks.
func (e *TrackEncoder) EncodeTrack(controller *entity.Controller, signals []*entity.Signal) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("kml")
	root.CreateAttr("xmlns", namespace)

	document := root.CreateElement("Document")
	document.CreateElement("name").SetText(controller.Name)
	document.CreateElement("description").SetText("Recorrido del controlador " + controller.Address)

	var coords []string
	for _, s := range signals {
		if !s.HasLocation() {
			continue
		}
		coord := s.Longitude.String() + "," + s.Latitude.String() + ",0"
		coords = append(coords, coord)

		pm := document.CreateElement("Placemark")
		pm.CreateElement("name").SetText(s.Timestamp.UTC().Format(time.RFC3339))
		pm.CreateElement("description").SetText(activeSensors(s.Sensors))
		pm.CreateElement("TimeStamp").CreateElement("when").SetText(s.Timestamp.UTC().Format(time.RFC3339))
		pm.CreateElement("Point").CreateElement("coordinates").SetText(coord)
	}

	if len(coords) > 1 {
		track := document.CreateElement("Placemark")
		track.CreateElement("name").SetText("Recorrido")
		ls := track.CreateElement("LineString")
		ls.CreateElement("tessellate").SetText("1")
		ls.CreateElement("coordinates").SetText(strings.Join(coords, " "))
	}

	doc.Indent(2)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("kml: serializar: %w", err)
	}
	return out.Bytes(), nil
}

func activeSensors(v entity.SensorValues) string {
	var on []string
	for i, active := range v {
		if active {
			on = append(on, entity.SensorNames[i])
		}
	}
	if len(on) == 0 {
		return "sin sensores activos"
	}
	return "activos: " + strings.Join(on, ", ")
}
