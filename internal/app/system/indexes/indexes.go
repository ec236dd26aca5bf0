// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureTeams(ctx, db); err != nil {
		problems = append(problems, "teams: "+err.Error())
	}
	if err := ensureMeetings(ctx, db); err != nil {
		problems = append(problems, "meetings: "+err.Error())
	}
	if err := ensureNotes(ctx, db); err != nil {
		problems = append(problems, "notes: "+err.Error())
	}
	if err := ensureGoals(ctx, db); err != nil {
		problems = append(problems, "goals: "+err.Error())
	}
	if err := ensureReflections(ctx, db); err != nil {
		problems = append(problems, "reflections: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := a != nil && *a
	bv := b != nil && *b
	return av == bv
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			if m.Options.Unique != nil {
				desiredUnique = m.Options.Unique
			}
		}
		desiredSig := keySig(m.Keys.(bson.D))

		start := time.Now()

		// Load existing indexes for this collection.
		existing := map[string]existingIndex{} // sig -> index
		cur, err := coll.Indexes().List(ctx)
		if err == nil {
			for cur.Next(ctx) {
				var idx existingIndex
				if err := cur.Decode(&idx); err != nil {
					zap.L().Warn("failed to decode existing index",
						zap.String("collection", coll.Name()),
						zap.Error(err))
					continue
				}
				existing[keySig(idx.Key)] = idx
			}
			cur.Close(ctx)
		}

		if ex, ok := existing[desiredSig]; ok {
			if sameBoolPtr(desiredUnique, ex.Unique) && (desiredName == "" || ex.Name == desiredName) {
				zap.L().Info("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", desiredSig))
				continue
			}

			// Name or options mismatch: drop and recreate with the desired shape.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
			if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): recreate failed: %v", coll.Name(), desiredName, err))
				continue
			}
			zap.L().Info("index dropped and recreated",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.String("took", time.Since(start).String()))
			continue
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.Error(err))
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                             */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Email must be unique across all users (folded via email_ci).
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_emailci"),
		},
		// Role lists: filter by role + status, sorted by folded name.
		{
			Keys: bson.D{
				{Key: "role", Value: 1},
				{Key: "status", Value: 1},
				{Key: "full_name_ci", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_users_role_status_fullnameci_id"),
		},
		// An advisor's student roster.
		{
			Keys:    bson.D{{Key: "advisor_id", Value: 1}, {Key: "full_name_ci", Value: 1}},
			Options: options.Index().SetName("idx_users_advisor_fullnameci"),
		},
	})
}

func ensureTeams(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("teams")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// No duplicate team names (folded via name_ci).
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_teams_nameci"),
		},
		// Which teams a student is on.
		{
			Keys:    bson.D{{Key: "student_ids", Value: 1}},
			Options: options.Index().SetName("idx_teams_students"),
		},
	})
}

func ensureMeetings(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("meetings")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Per-student history and same-day override lookups.
		{
			Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "scheduled_date", Value: -1}},
			Options: options.Index().SetName("idx_meetings_student_date"),
		},
		// Advisor meeting lists.
		{
			Keys:    bson.D{{Key: "advisor_id", Value: 1}, {Key: "scheduled_date", Value: -1}},
			Options: options.Index().SetName("idx_meetings_advisor_date"),
		},
		// Webhook lookups by external booking event.
		{
			Keys:    bson.D{{Key: "calendly_event_id", Value: 1}},
			Options: options.Index().SetName("idx_meetings_calendly_event"),
		},
	})
}

func ensureNotes(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("notes")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Advisor's notes, newest-first.
		{
			Keys:    bson.D{{Key: "advisor_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_notes_advisor_created"),
		},
		// Notes tagged at a student (roster flattened onto student_ids).
		{
			Keys:    bson.D{{Key: "student_ids", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_notes_students_created"),
		},
	})
}

func ensureGoals(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("goals")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_goals_student_created"),
		},
	})
}

func ensureReflections(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("reflections")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_reflections_student_created"),
		},
		{
			Keys:    bson.D{{Key: "meeting_id", Value: 1}},
			Options: options.Index().SetName("idx_reflections_meeting"),
		},
	})
}
