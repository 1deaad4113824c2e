package boards

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Board is a supported target hardware profile. BaudRate is the serial-link
// connection parameter handed to the serial subsystem; this layer does not
// speak the wire protocol itself.
type Board struct {
	ID       string `json:"id" yaml:"id"`
	Label    string `json:"label" yaml:"label"`
	MCU      string `json:"mcu" yaml:"mcu"`
	BaudRate int    `json:"baud_rate" yaml:"baud_rate"`
}

type Catalog struct {
	boards []Board
	byID   map[string]Board
}

type catalogFile struct {
	Boards []Board `yaml:"boards"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return newCatalog([]Board{
		{ID: "uno", Label: "Arduino Uno", MCU: "atmega328p", BaudRate: 9600},
		{ID: "nano", Label: "Arduino Nano", MCU: "atmega328p", BaudRate: 9600},
		{ID: "mega2560", Label: "Arduino Mega 2560", MCU: "atmega2560", BaudRate: 9600},
		{ID: "leonardo", Label: "Arduino Leonardo", MCU: "atmega32u4", BaudRate: 9600},
		{ID: "micro", Label: "Arduino Micro", MCU: "atmega32u4", BaudRate: 9600},
		{ID: "esp32", Label: "ESP32 Dev Module", MCU: "esp32", BaudRate: 115200},
		{ID: "esp8266", Label: "NodeMCU (ESP8266)", MCU: "esp8266", BaudRate: 115200},
	})
}

// Load reads a catalog from a YAML file. An empty path falls back to the
// built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read boards file: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse boards file: %w", err)
	}
	if len(f.Boards) == 0 {
		return nil, fmt.Errorf("boards file %s defines no boards", path)
	}
	for _, b := range f.Boards {
		if b.ID == "" {
			return nil, fmt.Errorf("boards file %s: board without id", path)
		}
	}

	return newCatalog(f.Boards), nil
}

func newCatalog(list []Board) *Catalog {
	byID := make(map[string]Board, len(list))
	for _, b := range list {
		byID[b.ID] = b
	}
	return &Catalog{boards: list, byID: byID}
}

func (c *Catalog) Lookup(id string) (Board, bool) {
	b, ok := c.byID[id]
	return b, ok
}

func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

func (c *Catalog) All() []Board {
	out := make([]Board, len(c.boards))
	copy(out, c.boards)
	return out
}
