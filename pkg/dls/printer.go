package dls

import (
	"encoding/xml"
	"fmt"
)

// Printer describes one printer known to the DLS host.
type Printer struct {
	Name        string `json:"name" yaml:"name"`
	ModelName   string `json:"model_name" yaml:"model_name"`
	IsConnected bool   `json:"is_connected" yaml:"is_connected"`
	IsLocal     bool   `json:"is_local" yaml:"is_local"`
	IsTwinTurbo bool   `json:"is_twin_turbo" yaml:"is_twin_turbo"`
}

// printersDocument matches any root element; every child is a printer,
// whatever its tag name.
type printersDocument struct {
	Printers []printerElement `xml:",any"`
}

type printerElement struct {
	XMLName     xml.Name
	Name        *string `xml:"Name"`
	ModelName   *string `xml:"ModelName"`
	IsConnected *string `xml:"IsConnected"`
	IsLocal     *string `xml:"IsLocal"`
	IsTwinTurbo *string `xml:"IsTwinTurbo"`
}

// parseCapitalizedBool reads the DLS boolean encoding. Only the exact text
// "True" is true; "true", "TRUE", "1" and "" are all false.
func parseCapitalizedBool(s string) bool {
	return s == "True"
}

// decodePrinters parses a GetPrinters body, preserving document order.
func decodePrinters(data []byte) ([]Printer, error) {
	var doc printersDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse printers xml: %w", err)
	}

	printers := make([]Printer, 0, len(doc.Printers))
	for i, el := range doc.Printers {
		p, err := el.toPrinter()
		if err != nil {
			return nil, fmt.Errorf("printer %d <%s>: %w", i, el.XMLName.Local, err)
		}
		printers = append(printers, p)
	}
	return printers, nil
}

func (el printerElement) toPrinter() (Printer, error) {
	fields := []struct {
		name  string
		value *string
	}{
		{"Name", el.Name},
		{"ModelName", el.ModelName},
		{"IsConnected", el.IsConnected},
		{"IsLocal", el.IsLocal},
		{"IsTwinTurbo", el.IsTwinTurbo},
	}
	for _, f := range fields {
		if f.value == nil {
			return Printer{}, fmt.Errorf("missing field %s", f.name)
		}
	}

	return Printer{
		Name:        *el.Name,
		ModelName:   *el.ModelName,
		IsConnected: parseCapitalizedBool(*el.IsConnected),
		IsLocal:     parseCapitalizedBool(*el.IsLocal),
		IsTwinTurbo: parseCapitalizedBool(*el.IsTwinTurbo),
	}, nil
}
