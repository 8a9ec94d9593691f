// Package domain models the EPEA (Estación Permanente de Estudios Ambientales)
// monitoring campaigns and the static registry that describes how they are drawn.
//
// # Data Source
//
// Campaign data is a hand-maintained semicolon-delimited table, one row per
// ship visit, converted offline (cmd/convert) into a single JSON document
// that the viewer loads at startup. The JSON document also carries the
// registry ("config") of parameters, families and vessels, which the
// converter preserves verbatim.
//
// # Campaigns
//
// A campaign is one year+month slot of the station's time series:
//
//	{"year": 2020, "month": "ene", "nro_visitas": "multiple",
//	 "tipo": "Propia_Oportunista",
//	 "barcos": [{"code": "BO", "tipo": "Propia"}, {"code": "PD", "tipo": "Oportunista"}],
//	 "variables": ["Temp", "Sal", "Cla"],
//	 "visitas": [{"barco": {"code": "BO", "tipo": "Propia"}, "variables": ["Temp", "Sal"]},
//	             {"barco": {"code": "PD", "tipo": "Oportunista"}, "variables": ["Temp", "Cla"]}]}
//
// Month keys are the twelve Spanish short codes (ene..dic) regardless of the
// display language. They are the join key between the dataset and the grid.
//
// When "visitas" is present the campaign-level "variables" is the union of the
// per-visit variable sets. [NewCampaign] recomputes it so the two never disagree.
//
// # Visit Types
//
// Visit types are free text written by the data owner. Classification is a
// case-insensitive substring match, see [ClassifyVisitType]:
//
//	"propia" or "dirigida" -> Directed      (the ship was sent to the station)
//	"oportunista"          -> Opportunistic (the ship passed by on another cruise)
//	anything else          -> Untyped       (no pupil, no badge)
//
// The campaign-level "tipo" joins the distinct per-ship types with "_" when
// ships of different types co-occur, e.g. "Propia_Oportunista" -> Mixed.
//
// # Ships
//
// The icon glyph has exactly three eye slots, so at most [MaxShipSlots]
// ships are drawn per campaign. Older datasets encode ships as bare codes
// ("barcos": ["BO"]); those inherit the campaign-level type. The decoder
// normalizes both shapes into [ShipParticipation].
package domain
