package metrics

const Namespace = "image_resizer"

const (
	TwitterOperationUpload = "media_upload"
	TwitterOperationTweet  = "tweet_create"
	TwitterOperationToken  = "token_exchange"
)

const (
	CallbackOutcomeSuccess       = "success"
	CallbackOutcomeProviderError = "provider_error"
	CallbackOutcomeInvalidState  = "invalid_state"
	CallbackOutcomeReplayed      = "replayed_state"
	CallbackOutcomeFailed        = "auth_failed"
)
