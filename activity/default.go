package activity

import "lms/database"

// Default returns a sink bound to the global document store. Safe to
// call before ConnectMongo; recording is then a no-op.
func Default() *Sink {
	if database.Mongo.Db == nil {
		return &Sink{}
	}
	return NewSink(database.Mongo.Db.Collection(database.ActivityLogCollection))
}
