package cliargs

import (
	"reflect"
	"testing"
)

func TestParseValid(t *testing.T) {
	args, err := Parse([]string{
		"-p", "4242", "-x", "10", "-y", "10", "-f", "100",
		"-n", "red", "blue", "-c", "3",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := Args{Port: 4242, Width: 10, Height: 10, Frequency: 100, TeamNames: []string{"red", "blue"}, SlotsPerTeam: 3}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("got %+v, want %+v", args, want)
	}
}

func TestParseTeamListStopsAtNextFlag(t *testing.T) {
	args, err := Parse([]string{
		"-n", "red", "blue", "green", "-p", "4242",
		"-x", "10", "-y", "10", "-f", "100", "-c", "1",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(args.TeamNames, []string{"red", "blue", "green"}) {
		t.Fatalf("unexpected team names: %v", args.TeamNames)
	}
}

func TestParseMissingRequired(t *testing.T) {
	_, err := Parse([]string{"-p", "4242"})
	if err == nil {
		t.Fatal("expected an error for missing required arguments")
	}
}

func TestParseOutOfRangePort(t *testing.T) {
	_, err := Parse([]string{
		"-p", "0", "-x", "10", "-y", "10", "-f", "100", "-n", "red", "-c", "1",
	})
	if err == nil {
		t.Fatal("expected an error for out-of-range port")
	}
}

func TestParseOutOfRangeWidth(t *testing.T) {
	_, err := Parse([]string{
		"-p", "4242", "-x", "5", "-y", "10", "-f", "100", "-n", "red", "-c", "1",
	})
	if err == nil {
		t.Fatal("expected an error for out-of-range width")
	}
}

func TestParseUnrecognizedFlag(t *testing.T) {
	_, err := Parse([]string{"-z", "oops"})
	if err == nil {
		t.Fatal("expected an error for an unrecognized flag")
	}
}
