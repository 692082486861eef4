package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/foxworks/reface/internal/config"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Fixed sampling parameters keep the agent's personality consistent between
// turns; replies stay short because they are spoken aloud.
const (
	completionMaxTokens   = 150
	completionTemperature = 0.8
)

type openAIProvider struct {
	client    openai.Client
	chatModel string
	voice     string
}

// Transcribe implements Transcriber via whisper-1.
func (o *openAIProvider) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("empty audio buffer")
	}
	resp, err := o.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: openai.AudioModelWhisper1,
		File:  openai.File(bytes.NewReader(audio), "audio.webm", mimeType),
	})
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	return resp.Text, nil
}

// Complete implements Completer.
func (o *openAIProvider) Complete(ctx context.Context, history []Message) (string, error) {
	convertedMsgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(history))
	for _, msg := range history {
		convertedMsgs = append(convertedMsgs, convertToOpenaiMsg(msg))
	}
	chatCompletion, err := o.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Messages:    convertedMsgs,
			Model:       o.chatModel,
			MaxTokens:   openai.Int(completionMaxTokens),
			Temperature: openai.Float(completionTemperature),
		},
	)
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}
	if len(chatCompletion.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return chatCompletion.Choices[0].Message.Content, nil
}

// Synthesize implements Synthesizer via tts-1 with the configured voice.
// Output is raw 16-bit 24kHz mono PCM so the playback envelope can be
// computed without a decode step.
func (o *openAIProvider) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("empty text")
	}
	resp, err := o.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModelTTS1,
		Input:          text,
		Voice:          openai.AudioSpeechNewParamsVoice(o.voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatPCM,
	})
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read synthesized audio: %w", err)
	}
	return audio, nil
}

func convertToOpenaiMsg(msg Message) openai.ChatCompletionMessageParamUnion {
	switch msg.Role {
	case ASSISTANT:
		return openai.AssistantMessage(msg.Content)
	case USER:
		return openai.UserMessage(msg.Content)
	case SYSTEM:
		return openai.SystemMessage(msg.Content)
	}
	return openai.UserMessage(msg.Content)
}

// NewOpenAIProvider builds the single provider backing all three voice
// concerns (STT, chat, TTS).
func NewOpenAIProvider(cfg config.OpenAIConfig) (Transcriber, Completer, Synthesizer) {
	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = openai.ChatModelGPT4oMini
	}
	voice := cfg.Voice
	if voice == "" {
		voice = "onyx"
	}
	p := &openAIProvider{
		client:    openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		chatModel: chatModel,
		voice:     voice,
	}
	return p, p, p
}
