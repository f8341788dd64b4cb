package fitexport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/muktihari/fit/encoder"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"
	"github.com/muktihari/fit/proto"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/hybridpro/internal/telemetry/tracing"
	"github.com/2beens/hybridpro/internal/workout"
)

const (
	productID        = 1
	maxElapsedMillis = math.MaxUint32 - 1
)

var ErrNoLogs = errors.New("no exercise logs to export")

// Encode writes the logs as a single strength training FIT activity.
// Every logged set becomes one Set message, timestamped with its log.
func Encode(ctx context.Context, logs []workout.ExerciseLog) (_ []byte, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "fitexport.encode")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("logs", len(logs)))

	if len(logs) == 0 {
		return nil, ErrNoLogs
	}

	start, end := logs[0].Timestamp, logs[0].Timestamp
	for _, l := range logs[1:] {
		start = min(start, l.Timestamp)
		end = max(end, l.Timestamp)
	}
	startTime := time.UnixMilli(start).UTC()
	endTime := time.UnixMilli(end).UTC()

	fit := &proto.FIT{
		Messages: []proto.Message{},
	}

	fileID := mesgdef.NewFileId(nil).
		SetType(typedef.FileActivity).
		SetManufacturer(typedef.ManufacturerDevelopment).
		SetProduct(productID).
		SetTimeCreated(startTime)
	fit.Messages = append(fit.Messages, fileID.ToMesg(nil))

	activity := mesgdef.NewActivity(nil).
		SetTimestamp(endTime).
		SetType(typedef.ActivityManual).
		SetNumSessions(1)
	fit.Messages = append(fit.Messages, activity.ToMesg(nil))

	// elapsed time is uint32 milliseconds and 0xFFFFFFFF means invalid,
	// so spans longer than ~49 days are capped
	elapsed := uint32(min(end-start, maxElapsedMillis))
	session := mesgdef.NewSession(nil).
		SetTimestamp(endTime).
		SetStartTime(startTime).
		SetSport(typedef.SportTraining).
		SetSubSport(typedef.SubSportStrengthTraining).
		SetTotalElapsedTime(elapsed).
		SetTotalTimerTime(elapsed)
	fit.Messages = append(fit.Messages, session.ToMesg(nil))

	setIndex := 0
	for _, l := range logs {
		setTime := time.UnixMilli(l.Timestamp).UTC()
		category := CategoryFor(l.ExerciseName)
		for _, s := range l.Sets {
			setMsg := mesgdef.NewSet(nil).
				SetTimestamp(setTime).
				SetStartTime(setTime).
				SetCategory([]typedef.ExerciseCategory{category}).
				SetSetType(typedef.SetTypeActive).
				SetMessageIndex(typedef.MessageIndex(setIndex))
			if s.Reps > 0 {
				setMsg.SetRepetitions(uint16(s.Reps))
			}
			if s.Weight > 0 {
				setMsg.SetWeightScaled(s.Weight)
			}
			fit.Messages = append(fit.Messages, setMsg.ToMesg(nil))
			setIndex++
		}
	}
	span.SetAttributes(attribute.Int("sets", setIndex))

	var buf bytes.Buffer
	if err := encoder.New(&buf).Encode(fit); err != nil {
		return nil, fmt.Errorf("encode fit activity: %w", err)
	}

	return buf.Bytes(), nil
}
