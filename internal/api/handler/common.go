package handler

import (
	"Glintz/internal/pkg/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// getPage 解析 page / page_size 查询参数并规范化
func getPage(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return util.NormalizePage(page, pageSize)
}

// pageToLimitOffset 分页参数换算成 limit/offset
func pageToLimitOffset(c *gin.Context) (int, int) {
	page, pageSize := getPage(c)
	return pageSize, (page - 1) * pageSize
}

// parseIDParam 解析路径上的数字 ID
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	raw := c.Param(name)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
