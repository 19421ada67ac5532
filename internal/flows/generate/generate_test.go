// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package generate_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/qrify/qrify/client"
	"github.com/qrify/qrify/internal/flows/generate"
	"github.com/qrify/qrify/internal/testutil"
)

type device string

func (d device) DeviceID() (string, bool) { return string(d), d != "" }

func TestValidate(t *testing.T) {
	for _, in := range []string{"", " ", "\t\n "} {
		if err := generate.Validate(in); !errors.Is(err, generate.ErrEmptyInput) {
			t.Fatalf("Validate(%q) = %v", in, err)
		}
	}
	if err := generate.Validate(" x "); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestSubmit_EmptyInputSendsNothing(t *testing.T) {
	calls := 0
	c := client.NewMockClient(nil, client.MockClientOverwrites{
		Create: func(context.Context, client.CreateInput) (client.Record, error) {
			calls++
			return client.Record{}, nil
		},
	})
	f := generate.New(c, device("dev"))
	if _, err := f.Submit(context.Background(), "   "); !errors.Is(err, generate.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no backend call, got %d", calls)
	}
}

func TestSubmit_ExactlyOneCreateWithTrimmedData(t *testing.T) {
	var got []client.CreateInput
	c := client.NewMockClient(nil, client.MockClientOverwrites{
		Create: func(_ context.Context, in client.CreateInput) (client.Record, error) {
			got = append(got, in)
			return client.Record{ID: "1", Data: in.Data}, nil
		},
	})
	f := generate.New(c, device("dev-9"))
	rec, err := f.Submit(context.Background(), "  hello world \n")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(got) != 1 || got[0] != (client.CreateInput{Data: "hello world", DeviceID: "dev-9"}) {
		t.Fatalf("unexpected create calls %+v", got)
	}
	cur, ok := f.Current()
	if !ok || cur.ID != rec.ID {
		t.Fatalf("current record not set")
	}
}

func TestSubmit_FailureKeepsCurrent(t *testing.T) {
	fail := false
	c := client.NewMockClient(nil, client.MockClientOverwrites{
		Create: func(_ context.Context, in client.CreateInput) (client.Record, error) {
			if fail {
				return client.Record{}, client.NewAPIError(http.StatusInternalServerError, nil)
			}
			return client.Record{ID: "first", Data: in.Data}, nil
		},
	})
	f := generate.New(c, device("dev"))
	if _, ok := f.Current(); ok {
		t.Fatalf("expected no current record initially")
	}
	if _, err := f.Submit(context.Background(), "a"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	fail = true
	if _, err := f.Submit(context.Background(), "b"); err == nil {
		t.Fatalf("expected error")
	}
	if cur, _ := f.Current(); cur.ID != "first" {
		t.Fatalf("current record changed on failure: %+v", cur)
	}
}

func TestSubmit_EndToEndAgainstFakeBackend(t *testing.T) {
	fake := testutil.NewFakeBackend(t)
	c := fake.Client("device-e2e")
	f := generate.New(c, device("device-e2e"))

	rec, err := f.Submit(context.Background(), "https://openai.com")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rec.Data != "https://openai.com" || rec.ScanCount != 0 {
		t.Fatalf("unexpected record %+v", rec)
	}

	reqs := fake.Requests()
	if len(reqs) != 1 || reqs[0].Route != testutil.RouteCreate || reqs[0].DeviceID != "device-e2e" {
		t.Fatalf("unexpected requests %+v", reqs)
	}
	var body client.CreateInput
	_ = json.Unmarshal(reqs[0].Body, &body)
	if body.Data != "https://openai.com" || body.DeviceID != "device-e2e" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestSubmit_WaitsForDeviceID(t *testing.T) {
	calls := 0
	c := client.NewMockClient(nil, client.MockClientOverwrites{
		Create: func(context.Context, client.CreateInput) (client.Record, error) {
			calls++
			return client.Record{ID: "1"}, nil
		},
	})
	for name, f := range map[string]*generate.Flow{
		"not ready": generate.New(c, device("")),
		"no source": generate.New(c, nil),
	} {
		if _, err := f.Submit(context.Background(), "hello"); !errors.Is(err, client.ErrNoDeviceID) {
			t.Fatalf("%s: expected ErrNoDeviceID, got %v", name, err)
		}
		if _, ok := f.Current(); ok {
			t.Fatalf("%s: current record set without a request", name)
		}
	}
	if calls != 0 {
		t.Fatalf("create sent without device id, %d calls", calls)
	}
}
