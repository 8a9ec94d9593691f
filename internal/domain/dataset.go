package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Metadata describes the dataset as a whole.
type Metadata struct {
	YearRange   [2]int
	LastUpdated string
	Months      []Month
}

// Dataset is the loaded campaign document: metadata, registry and campaigns.
type Dataset struct {
	Metadata  Metadata
	Registry  *Registry
	Config    json.RawMessage // registry as read, preserved byte for byte by the converter
	Campaigns []Campaign

	decodeIssues []Issue
	index        map[string]int
}

// NewDataset indexes campaigns by year+month. On duplicate slots the first wins.
func NewDataset(meta Metadata, config json.RawMessage, reg *Registry, campaigns []Campaign) *Dataset {
	d := &Dataset{
		Metadata:  meta,
		Registry:  reg,
		Config:    config,
		Campaigns: campaigns,
		index:     make(map[string]int, len(campaigns)),
	}
	for i, c := range campaigns {
		if _, ok := d.index[c.Key()]; !ok {
			d.index[c.Key()] = i
		}
	}
	return d
}

// Campaign returns the campaign for a slot.
func (d *Dataset) Campaign(year int, month Month) (Campaign, bool) {
	i, ok := d.index[CampaignKey(year, month)]
	if !ok {
		return Campaign{}, false
	}
	return d.Campaigns[i], true
}

// Years returns every year of the metadata range, ascending.
func (d *Dataset) Years() []int {
	lo, hi := d.Metadata.YearRange[0], d.Metadata.YearRange[1]
	if hi < lo {
		return nil
	}
	years := make([]int, 0, hi-lo+1)
	for y := lo; y <= hi; y++ {
		years = append(years, y)
	}
	return years
}

// Wire format.

type datasetDoc struct {
	Metadata  metadataDoc     `json:"metadata"`
	Config    json.RawMessage `json:"config"`
	Campaigns []campaignDoc   `json:"campañas"`
}

type metadataDoc struct {
	LastUpdated string   `json:"lastUpdated"`
	YearRange   [2]int   `json:"yearRange"`
	Months      []string `json:"months,omitempty"`
}

type campaignDoc struct {
	Year       int             `json:"year"`
	Month      string          `json:"month"`
	NroVisitas json.RawMessage `json:"nro_visitas"`
	Tipo       string          `json:"tipo"`
	Barcos     []shipDoc       `json:"barcos"`
	Variables  []string        `json:"variables"`
	Visitas    []visitDoc      `json:"visitas"`
}

type visitDoc struct {
	Barco     *shipDoc `json:"barco"`
	Variables []string `json:"variables"`
}

// shipDoc accepts both {"code": "BO", "tipo": "Propia"} and the legacy bare "BO".
type shipDoc struct {
	Code   string `json:"code"`
	Tipo   string `json:"tipo"`
	legacy bool
}

func (s *shipDoc) UnmarshalJSON(b []byte) error {
	var code string
	if err := json.Unmarshal(b, &code); err == nil {
		*s = shipDoc{Code: code, legacy: true}
		return nil
	}
	type plain shipDoc
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("decode ship: %w", err)
	}
	*s = shipDoc(p)
	return nil
}

type registryDoc struct {
	Parametros json.RawMessage `json:"parametros"`
	Familias   json.RawMessage `json:"familias"`
	Barcos     json.RawMessage `json:"barcos"`
}

type parameterDoc struct {
	Key           string `json:"key"`
	Familia       string `json:"familia"`
	Nombre        string `json:"nombre"`
	NombreEN      string `json:"nombre_en"`
	Color         string `json:"color"`
	Descripcion   string `json:"descripcion"`
	DescripcionEN string `json:"descripcion_en"`
}

type familyDoc struct {
	Nombre   string `json:"nombre"`
	NombreEN string `json:"nombre_en"`
}

type vesselDoc struct {
	Nombre        string `json:"nombre"`
	Color         string `json:"color"`
	Descripcion   string `json:"descripcion"`
	DescripcionEN string `json:"descripcion_en"`
}

// DecodeDataset reads the dataset JSON document. Structural problems that do
// not prevent rendering (unknown months, ship overflow, variables that
// disagree with the visit union) are kept as issues, see [Dataset.Issues].
func DecodeDataset(r io.Reader) (*Dataset, error) {
	var doc datasetDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	reg, err := DecodeRegistry(doc.Config)
	if err != nil {
		return nil, err
	}

	meta := Metadata{
		YearRange:   doc.Metadata.YearRange,
		LastUpdated: doc.Metadata.LastUpdated,
	}
	for _, m := range doc.Metadata.Months {
		if month, err := ParseMonth(m); err == nil {
			meta.Months = append(meta.Months, month)
		}
	}

	var issues []Issue
	campaigns := make([]Campaign, 0, len(doc.Campaigns))
	for _, cd := range doc.Campaigns {
		c, campaignIssues, ok := cd.toCampaign()
		issues = append(issues, campaignIssues...)
		if ok {
			campaigns = append(campaigns, c)
		}
	}

	ds := NewDataset(meta, doc.Config, reg, campaigns)
	ds.decodeIssues = issues
	return ds, nil
}

func (cd campaignDoc) toCampaign() (Campaign, []Issue, bool) {
	month, err := ParseMonth(cd.Month)
	if err != nil {
		return Campaign{}, []Issue{{Kind: IssueUnknownMonth, Year: cd.Year, Detail: err.Error()}}, false
	}

	var issues []Issue
	ships := make([]ShipParticipation, 0, len(cd.Barcos))
	for _, sd := range cd.Barcos {
		rawType := sd.Tipo
		if sd.legacy {
			rawType = cd.Tipo
			issues = append(issues, Issue{Kind: IssueLegacyShip, Year: cd.Year, Month: month, Detail: sd.Code})
		}
		ships = append(ships, NewShipParticipation(sd.Code, rawType))
	}

	visits := make([]Visit, 0, len(cd.Visitas))
	for _, vd := range cd.Visitas {
		v := Visit{Variables: NewVariableSet(vd.Variables...)}
		if vd.Barco != nil && vd.Barco.Code != "" && vd.Barco.Code != "NA" {
			rawType := vd.Barco.Tipo
			if vd.Barco.legacy {
				rawType = cd.Tipo
			}
			s := NewShipParticipation(vd.Barco.Code, rawType)
			v.Ship = &s
		}
		visits = append(visits, v)
	}

	c := NewCampaign(cd.Year, month, cd.Tipo, parseVisitCount(cd.NroVisitas, len(visits)), ships, cd.Variables, visits)

	if len(visits) > 0 && !NewVariableSet(cd.Variables...).Equal(c.Variables) {
		issues = append(issues, Issue{
			Kind:   IssueUnionMismatch,
			Year:   c.Year,
			Month:  c.Month,
			Detail: fmt.Sprintf("declared %v, visits %v", cd.Variables, c.Variables.Keys()),
		})
	}
	return c, issues, true
}

func parseVisitCount(raw json.RawMessage, visits int) VisitCount {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return VisitCount{}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n int
		if err := json.Unmarshal(raw, &n); err != nil || n < 0 {
			return VisitCount{}
		}
		return KnownVisitCount(n)
	}

	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "na":
		return VisitCount{}
	case "unica":
		return KnownVisitCount(1)
	case "multiple":
		if visits > 1 {
			return KnownVisitCount(visits)
		}
		return VisitCount{}
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n >= 0 {
		return KnownVisitCount(n)
	}
	return VisitCount{}
}

// DecodeRegistry decodes the "config" object, keeping the document order of
// parameters, families and vessels.
func DecodeRegistry(raw json.RawMessage) (*Registry, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return NewRegistry(nil, nil, nil), nil
	}

	var doc registryDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	var params []ParameterConfig
	err := eachEntry(doc.Parametros, func(id string, v json.RawMessage) error {
		var p parameterDoc
		if err := json.Unmarshal(v, &p); err != nil {
			return fmt.Errorf("parameter %s: %w", id, err)
		}
		params = append(params, ParameterConfig{
			ID:          id,
			Key:         p.Key,
			FamilyID:    p.Familia,
			Name:        Text{ES: p.Nombre, EN: p.NombreEN},
			Color:       p.Color,
			Description: Text{ES: p.Descripcion, EN: p.DescripcionEN},
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	var families []FamilyConfig
	err = eachEntry(doc.Familias, func(id string, v json.RawMessage) error {
		var f familyDoc
		if err := json.Unmarshal(v, &f); err != nil {
			return fmt.Errorf("family %s: %w", id, err)
		}
		families = append(families, FamilyConfig{ID: id, Name: Text{ES: f.Nombre, EN: f.NombreEN}})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	var vessels []VesselConfig
	err = eachEntry(doc.Barcos, func(code string, v json.RawMessage) error {
		var s vesselDoc
		if err := json.Unmarshal(v, &s); err != nil {
			return fmt.Errorf("vessel %s: %w", code, err)
		}
		vessels = append(vessels, VesselConfig{
			Code:        code,
			Name:        s.Nombre,
			Color:       s.Color,
			Description: Text{ES: s.Descripcion, EN: s.DescripcionEN},
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return NewRegistry(params, families, vessels), nil
}

// eachEntry walks a JSON object in document order.
func eachEntry(raw json.RawMessage, fn func(key string, value json.RawMessage) error) error {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected key, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}
		if err := fn(key, value); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}

// EncodeDataset writes the dataset document with two-space indentation,
// unescaped UTF-8 and a trailing newline.
func EncodeDataset(w io.Writer, d *Dataset) error {
	doc := datasetDoc{
		Metadata: metadataDoc{
			LastUpdated: d.Metadata.LastUpdated,
			YearRange:   d.Metadata.YearRange,
		},
		Config:    d.Config,
		Campaigns: make([]campaignDoc, 0, len(d.Campaigns)),
	}
	if len(bytes.TrimSpace(doc.Config)) == 0 {
		doc.Config = json.RawMessage("{}")
	}
	for _, m := range d.Metadata.Months {
		doc.Metadata.Months = append(doc.Metadata.Months, string(m))
	}
	for _, c := range d.Campaigns {
		doc.Campaigns = append(doc.Campaigns, campaignToDoc(c))
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return nil
}

func campaignToDoc(c Campaign) campaignDoc {
	cd := campaignDoc{
		Year:       c.Year,
		Month:      string(c.Month),
		NroVisitas: visitCountDoc(c.VisitCount),
		Tipo:       c.RawType,
		Barcos:     make([]shipDoc, 0, len(c.Ships)),
		Variables:  c.Variables.Keys(),
		Visitas:    make([]visitDoc, 0, len(c.Visits)),
	}
	for _, s := range c.Ships {
		cd.Barcos = append(cd.Barcos, shipDoc{Code: s.ShipCode, Tipo: s.RawType})
	}
	for _, v := range c.Visits {
		vd := visitDoc{Variables: v.Variables.Keys()}
		if v.Ship != nil {
			vd.Barco = &shipDoc{Code: v.Ship.ShipCode, Tipo: v.Ship.RawType}
		}
		cd.Visitas = append(cd.Visitas, vd)
	}
	return cd
}

// CampaignJSON encodes a single campaign in the dataset wire format.
func CampaignJSON(c Campaign) ([]byte, error) {
	data, err := json.Marshal(campaignToDoc(c))
	if err != nil {
		return nil, fmt.Errorf("encode campaign %s: %w", c.Key(), err)
	}
	return data, nil
}

func visitCountDoc(c VisitCount) json.RawMessage {
	switch {
	case !c.Known() || c.Value() == 0:
		return json.RawMessage("null")
	case c.Value() == 1:
		return json.RawMessage(`"unica"`)
	default:
		return json.RawMessage(`"multiple"`)
	}
}
