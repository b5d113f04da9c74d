// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package expect

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stratastor/adminevents/internal/common"
	"github.com/stratastor/adminevents/pkg/adminevent"
	"github.com/stratastor/adminevents/pkg/assertevents"
	"github.com/stratastor/adminevents/pkg/representations"
)

type options struct {
	realm              string
	operation          string
	path               string
	pathPrefix         string
	pathPattern        string
	errorMsg           string
	authRealm          string
	authUser           string
	authClient         string
	representation     string
	representationType string
}

func NewExpectCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "expect",
		Short: "Poll the next admin event and check it against an expectation",
		Long: `Poll the next admin event and check it against an expectation.

Fields are checked in order: realm, operation type, resource path, error,
auth details, representation. The first mismatch is reported and the command
exits non-zero. Without --auth-realm/--auth-user the expected actor is derived
from the configured admin credential.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := common.NewAdminEvents()
			if err != nil {
				return err
			}
			expected, err := buildExpectation(events.Expect(), opts)
			if err != nil {
				return err
			}

			actual, err := events.Next(cmd.Context())
			if err != nil {
				return err
			}
			if err := expected.Check(cmd.Context(), actual); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "OK %s\n", actual)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.realm, "realm", "", "Expected realm id")
	f.StringVar(&opts.operation, "operation", "", "Expected operation type (CREATE, UPDATE, DELETE, ACTION)")
	f.StringVar(&opts.path, "path", "", "Expected resource path (exact)")
	f.StringVar(&opts.pathPrefix, "path-prefix", "", "Expected resource path prefix")
	f.StringVar(&opts.pathPattern, "path-pattern", "", "Expected resource path regular expression")
	f.StringVar(&opts.errorMsg, "error", "", "Expected error; the operation type gains the _ERROR suffix")
	f.StringVar(&opts.authRealm, "auth-realm", "", "Expected realm id of the acting user")
	f.StringVar(&opts.authUser, "auth-user", "", "Expected user id of the acting user")
	f.StringVar(&opts.authClient, "auth-client", "", "Expected client id of the acting user")
	f.StringVar(&opts.representation, "representation", "", "JSON object the representation must match on every set property")
	f.StringVar(&opts.representationType, "representation-type", "",
		"Decode --representation as this shape ("+strings.Join(representations.Kinds(), ", ")+")")

	_ = cmd.MarkFlagRequired("realm")
	_ = cmd.MarkFlagRequired("operation")
	cmd.MarkFlagsMutuallyExclusive("path", "path-prefix", "path-pattern")

	return cmd
}

func buildExpectation(e assertevents.Expectation, opts options) (assertevents.Expectation, error) {
	op := adminevent.OperationType(strings.ToUpper(opts.operation))
	switch strings.TrimSuffix(string(op), adminevent.ErrorSuffix) {
	case string(adminevent.Create), string(adminevent.Update), string(adminevent.Delete), string(adminevent.Action):
	default:
		return e, fmt.Errorf("unknown operation type %q", opts.operation)
	}

	e = e.RealmID(opts.realm).OperationType(op)

	switch {
	case opts.path != "":
		e = e.ResourcePath(opts.path)
	case opts.pathPrefix != "":
		e = e.ResourcePathMatching(assertevents.HasPrefix(opts.pathPrefix))
	case opts.pathPattern != "":
		m, err := assertevents.Pattern(opts.pathPattern)
		if err != nil {
			return e, fmt.Errorf("invalid --path-pattern: %w", err)
		}
		e = e.ResourcePathMatching(m)
	}

	if opts.errorMsg != "" {
		e = e.Error(opts.errorMsg)
	}
	if opts.authRealm != "" || opts.authUser != "" || opts.authClient != "" {
		e = e.AuthDetails(opts.authRealm, opts.authClient, opts.authUser)
	}
	if opts.representation != "" {
		tmpl, err := representations.FromJSON(opts.representationType, opts.representation)
		if err != nil {
			return e, err
		}
		e = e.Representation(tmpl)
	}
	return e, nil
}

