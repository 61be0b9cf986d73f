package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ravikumar1136/sailHeatPlan/internal/config"
	"github.com/ravikumar1136/sailHeatPlan/internal/model"
	"github.com/ravikumar1136/sailHeatPlan/internal/service/heatplan"
)

func upload(name, text string) heatplan.Upload {
	return heatplan.Upload{Filename: name, Reader: strings.NewReader(text), Size: int64(len(text))}
}

func collect(ch <-chan ProgressEvent) []ProgressEvent {
	var events []ProgressEvent
	for evt := range ch {
		events = append(events, evt)
	}
	return events
}

func TestRun_StreamsStages(t *testing.T) {
	t.Parallel()

	c := NewCoordinator(heatplan.FromConfig(config.DefaultConfig()))
	events := collect(c.Run(context.Background(), RunOptions{
		Orders: upload("orders.csv", "Grade,Wid,B Qty\n301L,1150,74\n304,1250,10\n"),
		Stock:  upload("stock.csv", "GRD,WIDT,PKT\n304,1250,PK-1\n"),
	}))

	want := []string{EventStart, EventParse, EventNormalize, EventPlan, EventDone}
	if len(events) != len(want) {
		t.Fatalf("events = %+v", events)
	}
	for i, evt := range events {
		if evt.Type != want[i] {
			t.Fatalf("event %d type = %s, want %s", i, evt.Type, want[i])
		}
		if evt.Timestamp.IsZero() {
			t.Fatalf("event %d missing timestamp", i)
		}
	}

	report, ok := events[len(events)-1].Data.(*heatplan.Report)
	if !ok {
		t.Fatalf("unexpected done data: %T", events[len(events)-1].Data)
	}
	if report.Result.Status != model.PlanStatusGenerated || len(report.Result.HeatPlan) != 1 {
		t.Fatalf("unexpected result: %+v", report.Result)
	}
	if report.Result.HeatPlan[0].HeatCount != 2 {
		t.Fatalf("heat count = %d, want 2", report.Result.HeatPlan[0].HeatCount)
	}
}

func TestRun_ErrorEvent(t *testing.T) {
	t.Parallel()

	c := NewCoordinator(heatplan.FromConfig(config.DefaultConfig()))
	events := collect(c.Run(context.Background(), RunOptions{
		Orders: upload("orders.csv", "Grade,Wid,B Qty\nA,1,1\n"),
	}))

	if len(events) != 2 {
		t.Fatalf("events = %+v", events)
	}
	last := events[1]
	if last.Type != EventError || !errors.Is(last.Err, heatplan.ErrMissingInput) {
		t.Fatalf("unexpected last event: %+v", last)
	}
}
