// Package picwish drives the asynchronous image-processing API.
//
// Every transformation is a [Stage] with the same contract: [Client.Submit]
// posts the source URL and receives an opaque task id, then [Client.Poll]
// waits at a fixed interval until the provider reports a terminal state.
// [Client.Process] chains both and returns the URL of the produced image,
// which the caller feeds into the next stage.
//
//	c := picwish.NewClient(apiKey)
//	job, err := c.Process(ctx, picwish.StageScale, photoURL)
//	if errors.Is(err, picwish.ErrUnauthorized) {
//		// the key is invalid for every candidate: stop the batch
//	}
//
// Nothing is retried. A failed submit or poll ends that stage; the poll loop
// is a wait for completion, not an error retry.
package picwish
