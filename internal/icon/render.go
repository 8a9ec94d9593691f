package icon

import "github.com/couchcryptid/epea-campaigns/internal/domain"

// Render draws a campaign on a fresh copy of tmpl.
//
// A campaign without variables is drawn as "not visited": every parameter and
// every eye/pupil is hidden regardless of ships. Otherwise each parameter is
// visible iff its key was collected, and each eye slot shows the ship at that
// position in its vessel color, with a pupil iff that ship's own visit was
// directed.
func Render(tmpl *Template, c domain.Campaign, reg *domain.Registry) *Icon {
	ic := tmpl.Instantiate()
	params := reg.Parameters()

	if !c.HasData() {
		for _, p := range params {
			ic.SetVisible(p.ID, false)
		}
		for slot := 1; slot <= domain.MaxShipSlots; slot++ {
			ic.SetVisible(EyeID(slot), false)
			ic.SetVisible(PupilID(slot), false)
		}
		return ic
	}

	for _, p := range params {
		ic.SetVisible(p.ID, c.Variables.Has(p.Key))
	}

	ships := c.SlotShips()
	for slot := 1; slot <= domain.MaxShipSlots; slot++ {
		if slot > len(ships) {
			ic.SetVisible(EyeID(slot), false)
			ic.SetVisible(PupilID(slot), false)
			continue
		}
		ship := ships[slot-1]
		ic.SetVisible(EyeID(slot), true)
		if v, ok := reg.Vessel(ship.ShipCode); ok && v.Color != "" {
			ic.SetEyeColor(slot, v.Color)
		}
		ic.SetVisible(PupilID(slot), ship.Directed())
	}
	return ic
}
