package deploy

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/cephkit/cephkit/internal/models"
)

func destructiveCalls(sess *fakeSession) [][]string {
	var calls [][]string
	for _, argv := range sess.calls {
		if len(argv) > 0 && (argv[0] == "rm" || argv[0] == "find") {
			calls = append(calls, argv)
		}
	}
	return calls
}

func TestPurgeDataRefusesWhileInstalledAnywhere(t *testing.T) {
	conn := newFakeConnector()
	conn.sessions["node1"] = &fakeSession{host: "node1", whichResult: true}
	conn.sessions["node2"] = &fakeSession{host: "node2", whichResult: false}
	d := newTestDeployer(conn, map[string]*fakeAdapter{
		"node1": {info: testInfo()},
		"node2": {info: testInfo()},
	})

	req := &models.HostRequest{Hosts: []string{"node1", "node2"}}
	err := d.PurgeData(context.Background(), req)

	var preErr *models.PreconditionError
	if !errors.As(err, &preErr) {
		t.Fatalf("Expected a PreconditionError, got %v", err)
	}
	if !reflect.DeepEqual(preErr.Hosts, []string{"node1"}) {
		t.Errorf("Expected the offending host list [node1], got %v", preErr.Hosts)
	}

	// Neither host may be touched destructively
	for host, sess := range conn.sessions {
		if calls := destructiveCalls(sess); len(calls) != 0 {
			t.Errorf("Expected no destructive calls on %s, got %v", host, calls)
		}
	}
}

func TestPurgeDataCleanRemoval(t *testing.T) {
	conn := newFakeConnector()
	sess := &fakeSession{host: "node1"}
	conn.sessions["node1"] = sess
	d := newTestDeployer(conn, map[string]*fakeAdapter{"node1": {info: testInfo()}})

	req := &models.HostRequest{Hosts: []string{"node1"}}
	if err := d.PurgeData(context.Background(), req); err != nil {
		t.Fatalf("PurgeData failed: %v", err)
	}

	want := [][]string{rmDataArgs, rmConfArgs}
	if got := destructiveCalls(sess); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if !sess.closed {
		t.Error("Expected the session to be closed")
	}
}

func TestPurgeDataUnmountsBeforeRetrying(t *testing.T) {
	conn := newFakeConnector()
	// The data dir survives the first removal attempt
	sess := &fakeSession{host: "node1", existsResults: []bool{true}}
	conn.sessions["node1"] = sess
	d := newTestDeployer(conn, map[string]*fakeAdapter{"node1": {info: testInfo()}})

	req := &models.HostRequest{Hosts: []string{"node1"}}
	if err := d.PurgeData(context.Background(), req); err != nil {
		t.Fatalf("PurgeData failed: %v", err)
	}

	want := [][]string{rmDataArgs, umountArgs, rmDataArgs, rmConfArgs}
	if got := destructiveCalls(sess); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected remediation sequence %v, got %v", want, got)
	}
}

func TestPurgeDataSecondRemovalFailureIsFatal(t *testing.T) {
	conn := newFakeConnector()
	sess := &fakeSession{
		host:          "node1",
		existsResults: []bool{true},
		// TryRun swallows the first attempt; Run surfaces the retry
		runErr: func(argv []string) error {
			if argv[0] == "rm" {
				return fmt.Errorf("device busy")
			}
			return nil
		},
	}
	conn.sessions["node1"] = sess
	d := newTestDeployer(conn, map[string]*fakeAdapter{
		"node1": {info: testInfo()},
		"node2": {info: testInfo()},
	})

	req := &models.HostRequest{Hosts: []string{"node1", "node2"}}
	err := d.PurgeData(context.Background(), req)

	var deployErr *models.DeployError
	if !errors.As(err, &deployErr) {
		t.Fatalf("Expected a DeployError, got %v", err)
	}
	if deployErr.Type != models.ErrRemoteExec || deployErr.Host != "node1" {
		t.Errorf("Expected RemoteExec on node1, got %s on %s", deployErr.Type, deployErr.Host)
	}
	if node2 := conn.sessions["node2"]; node2 != nil {
		if calls := destructiveCalls(node2); len(calls) != 0 {
			t.Errorf("node2 should not be purged after node1 failed, got %v", calls)
		}
	}
}

func TestPurgeDataConfRemovalFailureIsFatal(t *testing.T) {
	conn := newFakeConnector()
	sess := &fakeSession{
		host: "node1",
		runErr: func(argv []string) error {
			if argv[len(argv)-1] == cephConfDir {
				return fmt.Errorf("permission denied")
			}
			return nil
		},
	}
	conn.sessions["node1"] = sess
	d := newTestDeployer(conn, map[string]*fakeAdapter{"node1": {info: testInfo()}})

	req := &models.HostRequest{Hosts: []string{"node1"}}
	err := d.PurgeData(context.Background(), req)
	if err == nil {
		t.Fatal("Expected the config dir removal failure to surface")
	}
}
