// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package webui serves the pizza tester page.
//
// The page is rendered on the server. Every button is a form post to
// /click/{element}; the posted input fields are copied into the controller
// before the bound action runs, and the browser is redirected back to the
// page. While an action is in flight the page refreshes itself until the
// results region settles.
//
// Routes:
//
//	GET  /                 page
//	POST /click/{element}  trigger a button
//	POST /keypress/{field} key press in an input field (key=Enter submits)
//	GET  /region           results region fragment
//	GET  /v1/state         controller state as JSON
package webui
