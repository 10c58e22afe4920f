package mapper

import (
	"pdf-chat-be/internal/dto"
	"pdf-chat-be/internal/entity"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) MessageToResponse(msg *entity.ChatMessage) *dto.ChatMessageResponse {
	if msg == nil {
		return nil
	}

	return &dto.ChatMessageResponse{
		Id:        msg.Id,
		Question:  msg.Question,
		Answer:    msg.Answer,
		Source:    msg.Source,
		Timestamp: msg.CreatedAt,
		ChatId:    msg.ChatId,
	}
}

func (m *ChatMapper) MessagesToResponses(msgs []*entity.ChatMessage) []*dto.ChatMessageResponse {
	out := make([]*dto.ChatMessageResponse, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, m.MessageToResponse(msg))
	}
	return out
}

func (m *ChatMapper) FileToResponse(f *entity.UploadedFile) *dto.UploadedFileResponse {
	if f == nil {
		return nil
	}

	return &dto.UploadedFileResponse{
		Id:         f.Id,
		Filename:   f.Filename,
		Size:       f.Size,
		UploadTime: f.UploadedAt,
	}
}

func (m *ChatMapper) FilesToResponses(files []*entity.UploadedFile) []*dto.UploadedFileResponse {
	out := make([]*dto.UploadedFileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, m.FileToResponse(f))
	}
	return out
}
