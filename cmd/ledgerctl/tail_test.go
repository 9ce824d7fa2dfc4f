package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "sulfurwatch/pkg/platform/audit"
)

func TestEventPrinter(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	var out bytes.Buffer
	p := newEventPrinter(&out)

	require.NoError(t, p.Handle(ctx, audit.Event{
		Type:      audit.EventNonComplianceReported,
		Timestamp: at,
		VesselID:  "IMO9",
		Fields: map[string]any{
			"message":    "Sulfur content exceeds ECA limit",
			"flag_state": "LR",
			"port_state": "NL",
		},
	}))
	require.NoError(t, p.Handle(ctx, audit.Event{
		Type:      audit.EventReadingRecorded,
		Timestamp: at,
		VesselID:  "IMO9",
		Fields: map[string]any{
			"sulfur_content": float64(150),
			"is_eca":         true,
			"is_compliant":   false,
			"position":       "Rotterdam",
		},
	}))
	require.NoError(t, p.Handle(ctx, audit.Event{
		Type:      audit.EventVesselRegistered,
		Timestamp: at,
		VesselID:  "IMO9",
		ActorID:   "admin",
	}))

	assert.Equal(t,
		"2026-06-01T08:00:00Z ALERT   vessel=IMO9 flag=LR port=NL message=\"Sulfur content exceeds ECA limit\"\n"+
			"2026-06-01T08:00:00Z READING vessel=IMO9 sulfur=150 eca=true compliant=false position=\"Rotterdam\"\n"+
			"2026-06-01T08:00:00Z VESSEL_REGISTERED vessel=IMO9 actor=admin\n",
		out.String())
}

func TestParseCategories(t *testing.T) {
	cats, err := parseCategories([]string{"Compliance,ledger", "compliance"})
	require.NoError(t, err)
	assert.Equal(t, []audit.EventCategory{audit.CategoryCompliance, audit.CategoryLedger}, cats)

	cats, err = parseCategories(nil)
	require.NoError(t, err)
	assert.Empty(t, cats)

	_, err = parseCategories([]string{"security"})
	assert.Error(t, err)
}

func TestTailRequiresBrokers(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "")
	cmd := newRootCmd()
	cmd.SetArgs([]string{"tail"})
	assert.Error(t, cmd.Execute())
}
