package claim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimelineEntryText(t *testing.T) {
	assert.Equal(t, "new field", TimelineEntry{Description: "new field", Event: "old field"}.Text())
	assert.Equal(t, "old field", TimelineEntry{Event: "old field"}.Text())
	assert.Equal(t, "", TimelineEntry{}.Text())
}

func TestApplyExtraction(t *testing.T) {
	t.Run("fills gaps only", func(t *testing.T) {
		c := LegacyClaim{
			DefendantName: "Movers Ltd",
			Amount:        4800,
		}
		ApplyExtraction(&c, Extraction{
			Defendant: "Someone Else",
			Amount:    9999,
			Timeline:  []TimelineEntry{{Date: "2024-01-10", Description: "Signed the contract"}},
			Demands:   []string{"Refund of the fee"},
		})

		assert.Equal(t, "Movers Ltd", c.DefendantName, "confirmed facts win over extraction")
		assert.Equal(t, 4800.0, c.Amount)
		assert.Len(t, c.Timeline, 1)
		assert.Equal(t, []string{"Refund of the fee"}, c.Demands)
	})

	t.Run("fills an empty record", func(t *testing.T) {
		var c LegacyClaim
		ApplyExtraction(&c, Extraction{
			Defendant:      "Movers Ltd",
			Amount:         4800,
			HasPriorNotice: true,
		})

		assert.Equal(t, "Movers Ltd", c.DefendantName)
		assert.Equal(t, 4800.0, c.Amount)
		assert.True(t, c.HasPriorNotice)
	})

	t.Run("structured defendants block the fallback name", func(t *testing.T) {
		c := LegacyClaim{Defendants: []Defendant{{Name: "Movers Ltd"}}}
		ApplyExtraction(&c, Extraction{Defendant: "Someone Else"})
		assert.Empty(t, c.DefendantName)
	})

	t.Run("prior notice is never revoked", func(t *testing.T) {
		c := LegacyClaim{HasPriorNotice: true}
		ApplyExtraction(&c, Extraction{HasPriorNotice: false})
		assert.True(t, c.HasPriorNotice)
	})
}
