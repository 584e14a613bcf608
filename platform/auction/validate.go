package auction

import (
	"fmt"

	"github.com/DedS3t/monopoly-auction/app/models"
	"github.com/DedS3t/monopoly-auction/platform/board"
)

// Validate checks a snapshot received from elsewhere before it replaces a
// local view. Every failure wraps ErrInvalidSnapshot.
func Validate(c *board.Catalog, st models.AuctionState) error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalidSnapshot, fmt.Sprintf(format, args...))
	}

	switch st.Stage {
	case models.StageAuction, models.StageComplete, models.StageResults:
	default:
		return invalid("unknown stage %q", st.Stage)
	}
	if st.Mode != models.TurnBased && st.Mode != models.Simultaneous {
		return invalid("unknown mode %q", st.Mode)
	}
	if st.Seq == 0 {
		return invalid("missing sequence number")
	}
	if len(st.Participants) == 0 || len(st.Participants) != len(st.Players) {
		return invalid("participants and players disagree")
	}
	for _, name := range st.Participants {
		if _, ok := st.Players[name]; !ok {
			return invalid("participant %s has no player record", name)
		}
	}
	if st.CurrentPlayerIndex < 0 || st.CurrentPlayerIndex >= len(st.Participants) {
		return invalid("turn pointer %d out of range", st.CurrentPlayerIndex)
	}

	seen := make(map[string]bool)
	claim := func(name string) error {
		if _, err := c.GetByName(name); err != nil {
			return invalid("unknown asset %q", name)
		}
		if seen[name] {
			return invalid("asset %q assigned more than once", name)
		}
		seen[name] = true
		return nil
	}

	if st.Stage == models.StageAuction {
		if st.CurrentProperty == "" {
			return invalid("auction running without a current asset")
		}
		if err := claim(st.CurrentProperty); err != nil {
			return err
		}
	} else if st.CurrentProperty != "" || len(st.Properties) > 0 {
		return invalid("finished auction still has assets queued")
	}
	for _, name := range st.Properties {
		if err := claim(name); err != nil {
			return err
		}
	}
	for _, name := range st.UnownedProperties {
		if err := claim(name); err != nil {
			return err
		}
	}
	for who, p := range st.Players {
		if p.Money < 0 {
			return invalid("%s has negative money", who)
		}
		for _, name := range p.Properties {
			if err := claim(name); err != nil {
				return err
			}
		}
	}
	for _, b := range st.CurrentBids {
		if _, ok := st.Players[b.Player]; !ok || b.Amount < 0 {
			return invalid("bad bid %+v", b)
		}
	}
	return nil
}
