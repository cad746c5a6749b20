package schedule

import "github.com/google/uuid"

// SlotKey derives a deterministic identifier for a (barber, date, time)
// triple. Two processes booking the same slot compute the same key, so the
// store's unique index on it is what rejects the loser of the race.
func SlotKey(barberName, date, clock string) string {
	return uuid.NewSHA1(
		uuid.NameSpaceOID,
		[]byte("latinbarber:slot:"+barberName+"|"+date+"|"+clock),
	).String()
}
