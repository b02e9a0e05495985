package contest

// Error context messages
const (
	ErrContextFailedToGetContest    = "failed to get contest"
	ErrContextFailedToCreateContest = "failed to create contest"
	ErrContextFailedToListContests  = "failed to list contests"
	ErrContextFailedToReplaceSlots  = "failed to replace prediction slots"
	ErrContextFailedToPublish       = "failed to publish contest"
	ErrContextFailedToUnpublish     = "failed to unpublish contest"
	ErrContextFailedToDeleteContest = "failed to delete contest"
)

// Log messages
const (
	LogMsgCreateContestCalled  = "CreateContest called"
	LogMsgContestCreated       = "Contest created"
	LogMsgPredictionsGenerated = "Prediction slots generated"
	LogMsgSlotsSkipped         = "Some values have no pricing band and were skipped"
	LogMsgContestPublished     = "Contest published"
	LogMsgContestUnpublished   = "Contest unpublished"
	LogMsgContestDeleted       = "Contest deleted"
	LogMsgPublisherUnavailable = "Event publisher unavailable"
)

// Validation limits
const (
	MaxNameLength = 200
	MaxPlaces     = 100
	maxPercentage = 100
)
