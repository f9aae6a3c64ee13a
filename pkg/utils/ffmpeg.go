package utils

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

type probeResult struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		Duration  string `json:"duration"`
	} `json:"streams"`
}

// ProbeDuration 通过ffprobe读取视频时长，单位秒(向上取整)
func ProbeDuration(videoPath string) (int64, error) {
	out, err := ffmpeg.Probe(videoPath)
	if err != nil {
		return 0, errors.WithMessage(err, "Failed to probe the video")
	}
	return parseProbeDuration(out)
}

func parseProbeDuration(out string) (int64, error) {
	var res probeResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		return 0, errors.Wrap(err, "invalid ffprobe output")
	}
	raw := res.Format.Duration
	if raw == "" {
		for _, s := range res.Streams {
			if s.CodecType == "video" && s.Duration != "" {
				raw = s.Duration
				break
			}
		}
	}
	if raw == "" {
		return 0, errors.New("ffprobe output has no duration")
	}
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid duration %q", raw)
	}
	return int64(math.Ceil(seconds)), nil
}

// GetVideoThumbnail 截取第一帧作为封面
func GetVideoThumbnail(videoPath, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return "", errors.WithMessage(err, "Failed to create folders")
	}
	outputPath := filepath.Join(outputDir, "thumbnail.jpg")
	err := ffmpeg.Input(videoPath).
		Output(outputPath, ffmpeg.KwArgs{
			"ss":      "00:00:00",
			"vframes": "1",
		}).
		OverWriteOutput().
		Run()
	if err != nil {
		return "", errors.WithMessage(err, "Failed to generate the thumbnail")
	}
	return outputPath, nil
}
