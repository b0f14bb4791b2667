package recognition

import (
	"context"
	"fmt"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

// Submit starts an asynchronous recognition job for the staged audio and
// returns the service-assigned operation name without waiting for it.
func (c *implClient) Submit(ctx context.Context, audioURI string) (string, error) {
	client, err := c.newClient(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	op, err := client.LongRunningRecognize(ctx, &speechpb.LongRunningRecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:              speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:       44100,
			LanguageCode:          "en-US",
			EnableWordTimeOffsets: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Uri{Uri: audioURI},
		},
	})
	if err != nil {
		return "", fmt.Errorf("submit recognition job: %w", err)
	}

	c.logger.Info(ctx, "Recognition job submitted: %s", op.Name())
	return op.Name(), nil
}

// Poll checks the job once. A job the service reports as failed is a
// terminal error; the caller must stop polling it.
func (c *implClient) Poll(ctx context.Context, jobID string) (*PollResult, error) {
	client, err := c.newClient(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	op := client.LongRunningRecognizeOperation(jobID)

	resp, err := op.Poll(ctx)
	if err != nil {
		return nil, fmt.Errorf("recognition job %s failed: %w", jobID, err)
	}

	info := JobInfo{Name: jobID}
	if meta, err := op.Metadata(); err == nil && meta != nil {
		info.ProgressPercent = meta.GetProgressPercent()
		info.URI = meta.GetUri()
		if meta.GetStartTime() != nil {
			info.StartTime = meta.GetStartTime().AsTime()
		}
		if meta.GetLastUpdateTime() != nil {
			info.LastUpdateTime = meta.GetLastUpdateTime().AsTime()
		}
	}

	if !op.Done() {
		c.logger.Debug(ctx, "Recognition job %s still in progress (%d%%)", jobID, info.ProgressPercent)
		return &PollResult{Info: info}, nil
	}

	return &PollResult{
		Done:    true,
		Results: convertResults(resp.GetResults()),
		Info:    info,
	}, nil
}

func (c *implClient) newClient(ctx context.Context) (*speech.Client, error) {
	client, err := speech.NewClient(ctx,
		option.WithCredentialsFile(c.credentialsFile),
		option.WithQuotaProject(c.projectID),
	)
	if err != nil {
		return nil, fmt.Errorf("create speech client: %w", err)
	}
	return client, nil
}
