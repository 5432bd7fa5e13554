// Command example demonstrates direct library usage without the HTTP
// server: upload a file, rate the musician, and read back the aggregate.
package main

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/tunehub/musician-media/pkg/musicmedia"
	"github.com/tunehub/musician-media/pkg/musicmedia/repo/memory"
	memorystorage "github.com/tunehub/musician-media/pkg/musicmedia/storage/memory"
)

func main() {
	ctx := context.Background()

	svc, err := musicmedia.New(
		musicmedia.WithRepository(memory.New()),
		musicmedia.WithBlobStore(memorystorage.New()),
	)
	if err != nil {
		log.Fatalf("Failed to create service: %v", err)
	}

	profile, err := svc.CreateProfile(ctx, musicmedia.CreateProfileRequest{
		UserID:      "user-ella",
		Name:        "Ella",
		Genres:      []string{"jazz"},
		Instruments: []string{"voice"},
	})
	if err != nil {
		log.Fatalf("Failed to create profile: %v", err)
	}
	fmt.Printf("Created profile %s for %s\n", profile.ID, profile.Name)

	media, err := svc.UploadMedia(ctx, musicmedia.UploadMediaRequest{
		OwnerID:     profile.UserID,
		Filename:    "demo-take.mp3",
		ContentType: "audio/mpeg",
		Title:       "Demo take",
	}, bytes.NewReader([]byte("pretend this is audio")))
	if err != nil {
		log.Fatalf("Failed to upload media: %v", err)
	}
	fmt.Printf("Uploaded %s (%s, %d bytes) as media %s\n",
		media.Filename, media.MediaType, media.FileSize, media.ID)

	for i, value := range []int{5, 3, 4} {
		if _, err := svc.AddRating(ctx, musicmedia.RateRequest{
			MusicianID: profile.ID,
			UserID:     fmt.Sprintf("fan-%d", i),
			Rating:     value,
		}); err != nil {
			log.Fatalf("Failed to add rating: %v", err)
		}
	}

	rated, err := svc.GetProfile(ctx, profile.ID)
	if err != nil {
		log.Fatalf("Failed to reload profile: %v", err)
	}
	fmt.Printf("%s now averages %.1f across %d ratings\n",
		rated.Name, rated.AverageRating, rated.TotalRatings)
}
