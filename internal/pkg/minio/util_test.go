package minio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setTestEndpoint(t *testing.T) {
	t.Helper()

	prevBase, prevMain, prevTemp := publicURLBase, MainBucket, TempBucket
	publicURLBase = "http://media.example.com/"
	MainBucket = "glintz-media"
	TempBucket = "glintz-temp"
	t.Cleanup(func() {
		publicURLBase, MainBucket, TempBucket = prevBase, prevMain, prevTemp
	})
}

func TestPublicURLRoundTrip(t *testing.T) {
	setTestEndpoint(t)

	url := GetPublicURL("1/abc.png")
	assert.Equal(t, "http://media.example.com/glintz-media/1/abc.png", url)

	// 客户端把完整外链存回来时要还原成对象键
	assert.Equal(t, "1/abc.png", ObjectKeyFromURL(url))
}

func TestObjectKeyFromURLHandlesTempBucket(t *testing.T) {
	setTestEndpoint(t)

	tempURL := GetTempPublicURL("1/abc.png")
	assert.Equal(t, "http://media.example.com/glintz-temp/1/abc.png", tempURL)
	assert.Equal(t, "1/abc.png", ObjectKeyFromURL(tempURL))
}

func TestObjectKeyFromURLKeepsForeignInput(t *testing.T) {
	setTestEndpoint(t)

	// 裸对象键和外部链接都原样保留
	assert.Equal(t, "1/abc.png", ObjectKeyFromURL("1/abc.png"))
	assert.Equal(t, "https://other.example.com/x.png", ObjectKeyFromURL("https://other.example.com/x.png"))
	assert.Equal(t, "", ObjectKeyFromURL(""))
}

func TestResolvePublicURL(t *testing.T) {
	setTestEndpoint(t)

	assert.Equal(t, "http://media.example.com/glintz-media/1/abc.png", ResolvePublicURL("1/abc.png"))
	assert.Equal(t, "https://other.example.com/x.png", ResolvePublicURL("https://other.example.com/x.png"))
	assert.Equal(t, "", ResolvePublicURL(""))
}

func TestURLHelpersBeforeInit(t *testing.T) {
	prev := publicURLBase
	publicURLBase = ""
	t.Cleanup(func() { publicURLBase = prev })

	assert.Equal(t, "1/abc.png", GetPublicURL("1/abc.png"))
	assert.Equal(t, "1/abc.png", ObjectKeyFromURL("1/abc.png"))
}
