package monitoring

import (
	"fmt"

	"github.com/SeaWatch/SW-Backend/internal/fleet"
	"github.com/SeaWatch/SW-Backend/internal/zones"
)

// violationMessage builds the operator-facing text for a zone hit. The
// wording escalates with the zone type.
func violationMessage(boat *fleet.Boat, zone *zones.Zone) string {
	switch zone.Type {
	case zones.TypeProhibited:
		return fmt.Sprintf(
			"PROHIBITED ZONE: Boat %q (%s) has entered the prohibited zone %q. Intervention required.",
			boat.Name, boat.RegistrationNumber, zone.Name,
		)
	case zones.TypeProtected:
		return fmt.Sprintf(
			"PROTECTED ZONE: Boat %q (%s) is inside the protected zone %q. Close watch recommended.",
			boat.Name, boat.RegistrationNumber, zone.Name,
		)
	case zones.TypeRestricted:
		return fmt.Sprintf(
			"RESTRICTED ZONE: Boat %q (%s) has entered the restricted zone %q.",
			boat.Name, boat.RegistrationNumber, zone.Name,
		)
	default:
		return fmt.Sprintf("Boat %q detected inside zone %q.", boat.Name, zone.Name)
	}
}

func driftMessage(boat *fleet.Boat) string {
	return fmt.Sprintf(
		"DRIFT: Boat %q (%s) is outside all authorized fishing zones.",
		boat.Name, boat.RegistrationNumber,
	)
}
