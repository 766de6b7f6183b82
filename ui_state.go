package main

type uiState struct {
	mode       mode
	noticeMsg  string
	noticeType string
	noticeSeq  int
	timeWindow timeWindowUI
	table      tableUI
}

type tableUI struct {
	cursor int
	rows   []int // row positions of the derived frame inside the viewport
}
