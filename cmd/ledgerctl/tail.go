package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sulfurwatch/internal/platform/config"
	"sulfurwatch/internal/platform/kafka"
	audit "sulfurwatch/pkg/platform/audit"
	auditconsumer "sulfurwatch/pkg/platform/audit/consumer"
	platformstrings "sulfurwatch/pkg/platform/strings"
)

func newTailCmd() *cobra.Command {
	var (
		brokers    []string
		prefix     string
		categories []string
		group      string
		fromStart  bool
	)
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Stream ledger, compliance and admin events from Kafka",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cats, err := parseCategories(categories)
			if err != nil {
				return err
			}
			consumer, err := kafka.NewConsumer(
				config.KafkaConfig{Brokers: platformstrings.SplitList(brokers), TopicPrefix: prefix},
				kafka.ConsumerOptions{Categories: cats, Group: group, FromStart: fromStart},
				nil,
			)
			if err != nil {
				return err
			}
			defer consumer.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return consumer.Run(ctx, newEventPrinter(cmd.OutOrStdout()))
		},
	}

	var defaultBrokers []string
	if env := os.Getenv("KAFKA_BROKERS"); env != "" {
		defaultBrokers = []string{env}
	}
	cmd.Flags().StringSliceVar(&brokers, "brokers", defaultBrokers, "Kafka seed brokers")
	cmd.Flags().StringVar(&prefix, "topic-prefix", envOr("KAFKA_TOPIC_PREFIX", "sulfurwatch"), "Topic prefix used by the server")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "Event categories to follow: compliance, ledger, admin (default all)")
	cmd.Flags().StringVar(&group, "group", "", "Consumer group; committed offsets resume where the group left off")
	cmd.Flags().BoolVar(&fromStart, "from-beginning", false, "Replay each topic from the earliest offset")
	return cmd
}

func parseCategories(values []string) ([]audit.EventCategory, error) {
	lowered := make([]string, len(values))
	for i, v := range values {
		lowered[i] = strings.ToLower(v)
	}
	var out []audit.EventCategory
	for _, v := range platformstrings.SplitList(lowered) {
		switch c := audit.EventCategory(v); c {
		case audit.CategoryCompliance, audit.CategoryLedger, audit.CategoryAdmin:
			out = append(out, c)
		default:
			return nil, fmt.Errorf("unknown category %q", v)
		}
	}
	return out, nil
}

// newEventPrinter renders one line per event, with alert and reading
// specific layouts.
func newEventPrinter(w io.Writer) *auditconsumer.Router {
	router := auditconsumer.NewRouter(nil, printer(w, formatEvent))
	router.Register(audit.CategoryCompliance, printer(w, formatAlert))
	router.Register(audit.CategoryLedger, printer(w, formatReading))
	return router
}

func printer(w io.Writer, format func(audit.Event) string) auditconsumer.HandlerFunc {
	return func(_ context.Context, e audit.Event) error {
		_, err := fmt.Fprintln(w, format(e))
		return err
	}
}

func formatAlert(e audit.Event) string {
	return fmt.Sprintf("%s ALERT   vessel=%s flag=%v port=%v message=%q",
		stamp(e), e.VesselID, e.Fields["flag_state"], e.Fields["port_state"], e.Fields["message"])
}

func formatReading(e audit.Event) string {
	return fmt.Sprintf("%s READING vessel=%s sulfur=%v eca=%v compliant=%v position=%q",
		stamp(e), e.VesselID, e.Fields["sulfur_content"], e.Fields["is_eca"], e.Fields["is_compliant"], e.Fields["position"])
}

func formatEvent(e audit.Event) string {
	line := fmt.Sprintf("%s %s", stamp(e), strings.ToUpper(string(e.Type)))
	if e.VesselID != "" {
		line += " vessel=" + e.VesselID
	}
	if e.ActorID != "" {
		line += " actor=" + e.ActorID
	}
	return line
}

func stamp(e audit.Event) string {
	return e.Timestamp.UTC().Format(time.RFC3339)
}
