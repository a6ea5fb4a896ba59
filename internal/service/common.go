package service

// Pagination defaults shared by the list queries.
const DefaultTake = 25

func paginationOffset(page, take int) int {
	return (page - 1) * take
}

func totalPages(totalResults int64, take int) int {
	if take <= 0 {
		return 0
	}
	pages := int(totalResults) / take
	if int(totalResults)%take != 0 {
		pages++
	}
	return pages
}

func normalizePage(page, take int) (int, int) {
	if page < 1 {
		page = 1
	}
	if take < 1 {
		take = DefaultTake
	}
	return page, take
}
